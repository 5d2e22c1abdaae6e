// Package internalcheck holds static policy tests for the pcl packages.
//
// The tests load the module with golang.org/x/tools/go/packages and inspect
// the syntax trees. The package has no API and should not be imported.
package internalcheck
