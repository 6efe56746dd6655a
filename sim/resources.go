package sim

import (
	"fmt"
	"strings"

	"github.com/markphelps/optional"
)

// ResourceAllocator hands out printer and hard drive indices and memory
// block addresses. State is run-wide, shared by every process.
type ResourceAllocator struct {
	printerCount   int
	hardDriveCount int
	systemMemory   int
	blockSize      int

	printerCursor   int
	hardDriveCursor int
	lastAddress     optional.Int // absent until the first allocation
}

// NewResourceAllocator creates an allocator sized from cfg.
func NewResourceAllocator(cfg SimConfig) *ResourceAllocator {
	return &ResourceAllocator{
		printerCount:   cfg.PrinterCount,
		hardDriveCount: cfg.HardDriveCount,
		systemMemory:   cfg.SystemMemory,
		blockSize:      cfg.MemoryBlockSize,
	}
}

// nextDevice returns the current cursor value and advances it. The cursor
// wraps to 0 only once it reaches count+1, so with count C the sequence is
// 0, 1, ..., C, 0, 1, ...
func nextDevice(cursor *int, count int) int {
	if *cursor == count+1 {
		*cursor = 0
	}
	idx := *cursor
	*cursor++
	return idx
}

// NextPrinter assigns the next printer index.
func (ra *ResourceAllocator) NextPrinter() int {
	return nextDevice(&ra.printerCursor, ra.printerCount)
}

// NextHardDrive assigns the next hard drive index.
func (ra *ResourceAllocator) NextHardDrive() int {
	return nextDevice(&ra.hardDriveCursor, ra.hardDriveCount)
}

// AssignDevice returns the device suffix for an I/O end phrase, e.g.
// " on PRNTR 0", or "" if the descriptor names no allocatable device.
func (ra *ResourceAllocator) AssignDevice(descriptor string) string {
	switch descriptor {
	case DevicePrinter:
		return fmt.Sprintf(" on PRNTR %d", ra.NextPrinter())
	case DeviceHardDrive:
		return fmt.Sprintf(" on HDD %d", ra.NextHardDrive())
	}
	return ""
}

// AllocateMemory returns the next block address. The first call of a run
// returns 0; later calls advance by the block size and wrap to 0 once the
// address reaches system memory.
func (ra *ResourceAllocator) AllocateMemory() int {
	address := 0
	if last, err := ra.lastAddress.Get(); err == nil {
		address = last + ra.blockSize
		if address >= ra.systemMemory {
			address = 0
		}
	}
	ra.lastAddress.Set(address)
	return address
}

// AllocateMemoryString is AllocateMemory rendered with FormatAddress.
func (ra *ResourceAllocator) AllocateMemoryString() string {
	return FormatAddress(ra.AllocateMemory())
}

const hexDigits = "0123456789ABCDEF"

// ToHex renders num in upper-case base 16 by repeated division,
// least-significant digit first. 0 renders as "0".
func ToHex(num int) string {
	if num == 0 {
		return "0"
	}
	n := uint(num)
	var digits []byte
	for n != 0 {
		digits = append(digits, hexDigits[n%16])
		n /= 16
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// FormatAddress renders an address as unsigned hex left-padded with zeros
// to 8 digits.
func FormatAddress(address int) string {
	hex := ToHex(address)
	if len(hex) >= 8 {
		return hex
	}
	return strings.Repeat("0", 8-len(hex)) + hex
}
