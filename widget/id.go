package widget

import (
	"fmt"
	"hash/fnv"
)

// idLen is the length of generated element IDs, matching the short
// alphanumeric IDs the page builder assigns to its own elements.
const idLen = 7

const idSpace = 36 * 36 * 36 * 36 * 36 * 36 * 36 // 36^idLen

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDFor returns the element ID for the widget of the given type built
// from the block at the given document position. IDs are pure functions
// of their inputs, so converting the same document twice yields
// byte-identical templates.
func IDFor(widgetType string, index int) string {
	return encode(hash(widgetType, index))
}

// ContainerID returns the element ID for a section or column container.
// Containers hash on their element type so they can never collide with
// widget IDs at the same index.
func ContainerID(elType string, index int) string {
	return encode(hash("el:"+elType, index))
}

func hash(label string, index int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", label, index)
	return h.Sum64() % idSpace
}

// encode renders n in base36, zero-padded to idLen characters.
func encode(n uint64) string {
	var buf [idLen]byte
	for i := idLen - 1; i >= 0; i-- {
		buf[i] = digits[n%36]
		n /= 36
	}
	return string(buf[:])
}
