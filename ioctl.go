//go:build linux

package vc4vk

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux ioctl request encoding, from <asm-generic/ioctl.h>.
const (
	iocWrite = 1
	iocRead  = 2

	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

// DRM UAPI, from <drm/drm.h> and <drm/vc4_drm.h>. These values are kernel
// ABI and must match bit-for-bit.
const (
	drmIoctlType   = 'd'
	drmCommandBase = 0x40

	drmVC4GetParam  = 0x07
	drmVC4GetTiling = 0x09
)

// Parameters accepted by DRM_IOCTL_VC4_GET_PARAM.
const (
	vc4ParamV3DIdent0          = 0
	vc4ParamV3DIdent1          = 1
	vc4ParamV3DIdent2          = 2
	vc4ParamSupportsBranches   = 3
	vc4ParamSupportsETC1       = 4
	vc4ParamSupportsThreadedFS = 5
	vc4ParamSupportsFixedRCL   = 6
	vc4ParamSupportsMadvise    = 7
	vc4ParamSupportsPerfmon    = 8
)

// drm_vc4_get_param
type drmVC4GetParamArgs struct {
	param uint32
	pad   uint32
	value uint64
}

// drm_vc4_get_tiling
type drmVC4GetTilingArgs struct {
	handle   uint32
	flags    uint32
	modifier uint64
}

func ioctlEncode(dir, typ, nr, size uint32) uint32 {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNrShift
}

// drmIOWR builds a DRM_IOWR(DRM_COMMAND_BASE+nr, ...) request number.
func drmIOWR(nr, size uint32) uint32 {
	return ioctlEncode(iocRead|iocWrite, drmIoctlType, drmCommandBase+nr, size)
}

// drmIoctl issues a request against fd, retrying on EINTR/EAGAIN the way
// libdrm does.
func drmIoctl(fd int, req uint32, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
		if errno == 0 {
			return nil
		}
		if errno == unix.EINTR || errno == unix.EAGAIN {
			continue
		}
		return errno
	}
}

// vc4GetParam queries one DRM_VC4_PARAM_* value.
func vc4GetParam(fd int, param uint32) (uint64, error) {
	args := drmVC4GetParamArgs{param: param}
	req := drmIOWR(drmVC4GetParam, uint32(unsafe.Sizeof(args)))
	if err := drmIoctl(fd, req, unsafe.Pointer(&args)); err != nil {
		return 0, fmt.Errorf("vc4 get_param %d: %w", param, err)
	}
	return args.value, nil
}

// vc4HasFeature reports whether an optional DRM_VC4_PARAM_SUPPORTS_* flag is
// set. A kernel old enough not to know the parameter rejects it with EINVAL,
// which simply means unsupported.
func vc4HasFeature(fd int, param uint32) (bool, error) {
	value, err := vc4GetParam(fd, param)
	if err != nil {
		if errors.Is(err, unix.EINVAL) {
			return false, nil
		}
		return false, err
	}
	return value != 0, nil
}

// vc4TestTiling probes GET_TILING with the null buffer-object handle. A
// kernel that implements the ioctl rejects the handle with ENOENT; one that
// lacks it fails with EINVAL.
func vc4TestTiling(fd int) bool {
	var args drmVC4GetTilingArgs
	req := drmIOWR(drmVC4GetTiling, uint32(unsafe.Sizeof(args)))
	err := drmIoctl(fd, req, unsafe.Pointer(&args))
	if err == nil {
		return true
	}
	return errors.Is(err, unix.ENOENT)
}

// vc4ChipVersion reads the V3D identity registers and folds them into the
// major*10+minor revision number (21 for VideoCore IV).
func vc4ChipVersion(fd int) (uint32, error) {
	ident0, err := vc4GetParam(fd, vc4ParamV3DIdent0)
	if err != nil {
		return 0, err
	}
	ident1, err := vc4GetParam(fd, vc4ParamV3DIdent1)
	if err != nil {
		return 0, err
	}
	major := uint32(ident0>>24) & 0xff
	minor := uint32(ident1) & 0xf
	return major*10 + minor, nil
}
