package memory

/*
 * goldOS  - Low level memory
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

import (
	"encoding/binary"
)

// Memory is a flat byte addressable store. Words are four bytes wide,
// big endian, and need not be aligned. Access routines report a fault
// when any byte of the access falls outside the store.
type Memory struct {
	mem  []byte
	size uint32
}

// Allocate memory of size bytes.
func New(size uint32) *Memory {
	return &Memory{mem: make([]byte, size), size: size}
}

// Return size of memory in bytes.
func (m *Memory) Size() uint32 {
	return m.size
}

// Check if address in range.
func (m *Memory) CheckAddr(addr uint32) bool {
	return addr < m.size
}

// Check that a full word starting at addr fits in memory.
func (m *Memory) checkWord(addr uint32) bool {
	return addr <= m.size && m.size-addr >= 4
}

// Get a word from memory.
func (m *Memory) GetWord(addr uint32) (uint32, bool) {
	if !m.checkWord(addr) {
		return 0, true
	}
	return binary.BigEndian.Uint32(m.mem[addr:]), false
}

// Put a word to memory.
func (m *Memory) PutWord(addr, data uint32) bool {
	if !m.checkWord(addr) {
		return true
	}
	binary.BigEndian.PutUint32(m.mem[addr:], data)
	return false
}

// Read a range of bytes, used for instruction fetch. The slice
// aliases the store, callers must not hold it across writes.
func (m *Memory) ReadBytes(addr, length uint32) ([]byte, bool) {
	if addr > m.size || m.size-addr < length {
		return nil, true
	}
	return m.mem[addr : addr+length], false
}

// Write a range of bytes, used by the loader.
func (m *Memory) WriteBytes(addr uint32, data []byte) bool {
	length := uint32(len(data))
	if addr > m.size || m.size-addr < length {
		return true
	}
	copy(m.mem[addr:], data)
	return false
}
