// Package qcow2 provides read-only access to the guest contents of qcow2 images.
// It supports only qcow2 versions 2 and 3.
//
// Unallocated and zero clusters read as zeros. Compressed clusters, encryption, backing files,
// external data files and extended L2 entries are not supported.
//
// references:
//
//	https://github.com/qemu/qemu/blob/master/docs/interop/qcow2.txt
//	https://people.gnome.org/~markmc/qcow-image-format.html
package qcow2
