/*
 * goldOS - Program image loader.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package loader

import (
	"fmt"
	"os"

	"github.com/ababoin07/goldOS/emu/memory"
)

// A program is a raw byte image copied verbatim into memory at a host
// chosen base address. No header, no relocations, no symbol table.

// LoadBytes copies an image into memory at base.
func LoadBytes(mem *memory.Memory, image []byte, base uint32) error {
	if mem.WriteBytes(base, image) {
		return fmt.Errorf("image of %d bytes at 0x%08x does not fit in %d bytes of memory",
			len(image), base, mem.Size())
	}
	return nil
}

// Load reads an image file and copies it into memory at base.
// Returns the number of bytes loaded.
func Load(mem *memory.Memory, path string, base uint32) (uint32, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if err := LoadBytes(mem, image, base); err != nil {
		return 0, err
	}
	return uint32(len(image)), nil
}
