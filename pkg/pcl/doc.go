// Package pcl binds the Point Cloud Library to Go.
//
// Every wrapped class comes in two flavours generated from catalog.yaml:
// <Name>Ptr holds the native object through a shared owner, like
// std::shared_ptr, and <Name>Val holds it in storage owned only by the
// wrapper. The bare name is an alias for the preferred one:
//
//	c, err := pcl.NewPointCloud[pcl.PointXYZ]()   // *PointCloudPtr[PointXYZ]
//	a, err := c.Alias()                           // same object, OwnCount 2
//	d, err := c.Clone()                           // independent copy
//	a.Release()
//
// Handles left unreachable are reclaimed by a finalizer. Any use after
// Release, Free or Move fails with ErrReleased.
//
// Builds with the cgo and pcl tags link libpcl. Other builds use a portable
// Go implementation of the same native surface; Backend reports which one is
// in use.
package pcl

//go:generate go run ../../cmd/pclgen -catalog catalog.yaml -go zz_generated_classes.go -cxx internal/backend/zz_generated_ctors.cpp -table internal/backend/zz_generated_ctors.go
