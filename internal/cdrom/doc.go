// Package cdrom talks to optical drives through the Linux CD-ROM ioctl
// interface.
//
// It reports drive status and reads the table of contents in LBA format,
// returning a validated toc.TOC. Other platforms compile against stubs that
// report ErrUnsupported.
package cdrom
