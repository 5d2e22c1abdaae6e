// Package backend hosts the native surface the pcl package forwards to.
//
// Two builds exist. With cgo enabled and the pcl build tag set, every call
// crosses into libpcl through the C ABI shim in capi.h / capi.cpp and the
// generated constructor table. Otherwise a portable Go implementation of the
// same surface is compiled in, including shared_ptr style reference counting,
// so the rest of the repository builds and tests without a C++ toolchain.
//
// Objects are opaque. Callers must not compare them or look inside; ownership
// is expressed only through Construct, Share, Copy and Free.
package backend
