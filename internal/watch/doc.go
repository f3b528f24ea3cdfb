// Package watch listens for udev media-change events on an optical drive.
//
// A Monitor subscribes to the kernel's udev netlink socket and invokes a
// handler whenever a disc is inserted into the configured device. Lock
// guards a device with a lock file so only one watcher handles a drive.
package watch
