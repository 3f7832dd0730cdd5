package wire

import "sync"

// Buffer sizes for the pools below. SmallBufferSize matches the
// upstream transport's fixed 600-byte receive ceiling (see the
// upstream package); listeners reading from clients use
// LargeBufferSize since a client is not bound by that constraint.
const (
	SmallBufferSize = 600
	LargeBufferSize = 65535
)

var smallBufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, SmallBufferSize)
		return &b
	},
}

var largeBufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, LargeBufferSize)
		return &b
	},
}

// GetSmallBuffer returns a reusable SmallBufferSize-length buffer.
func GetSmallBuffer() *[]byte { return smallBufferPool.Get().(*[]byte) }

// PutSmallBuffer returns a buffer obtained from GetSmallBuffer.
func PutSmallBuffer(b *[]byte) { smallBufferPool.Put(b) }

// GetLargeBuffer returns a reusable LargeBufferSize-length buffer.
func GetLargeBuffer() *[]byte { return largeBufferPool.Get().(*[]byte) }

// PutLargeBuffer returns a buffer obtained from GetLargeBuffer.
func PutLargeBuffer(b *[]byte) { largeBufferPool.Put(b) }
