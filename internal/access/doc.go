// Package access holds the console's role-based access table and the two
// views derived from it: the sidebar navigation and the route guard verdict.
//
// Both read the same table, so a menu entry for a role always points at a
// path the guard grants to that role.
package access
