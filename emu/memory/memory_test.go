package memory

/*
 * goldOS  - Low level memory test cases
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
	"testing"
)

// Check word round trip at every starting offset.
func TestWordRoundTrip(t *testing.T) {
	mem := New(256)
	for i := range uint32(252) {
		if mem.PutWord(i, 0xdeadbeef) {
			t.Errorf("PutWord faulted at addr: %d", i)
		}
		r, fault := mem.GetWord(i)
		if fault {
			t.Errorf("GetWord faulted at addr: %d", i)
		}
		if r != 0xdeadbeef {
			t.Errorf("GetWord not correct got: %08x expected: %08x", r, 0xdeadbeef)
		}
	}
}

// Check words are stored most significant byte first.
func TestBigEndian(t *testing.T) {
	mem := New(64)
	if mem.PutWord(8, 0x01020304) {
		t.Error("PutWord faulted")
	}
	b, fault := mem.ReadBytes(8, 4)
	if fault {
		t.Error("ReadBytes faulted")
	}
	for i, expect := range []byte{0x01, 0x02, 0x03, 0x04} {
		if b[i] != expect {
			t.Errorf("Byte %d not correct got: %02x expected: %02x", i, b[i], expect)
		}
	}

	// Unaligned access is legal.
	if mem.PutWord(9, 0xaabbccdd) {
		t.Error("PutWord unaligned faulted")
	}
	r, fault := mem.GetWord(9)
	if fault {
		t.Error("GetWord unaligned faulted")
	}
	if r != 0xaabbccdd {
		t.Errorf("GetWord not correct got: %08x expected: %08x", r, 0xaabbccdd)
	}
}

// Check word access faults when any byte falls outside memory.
func TestWordBounds(t *testing.T) {
	mem := New(256)
	for _, addr := range []uint32{253, 254, 255, 256, 1024, 0xfffffffc, 0xffffffff} {
		if !mem.PutWord(addr, 1) {
			t.Errorf("PutWord did not fault at addr: %d", addr)
		}
		_, fault := mem.GetWord(addr)
		if !fault {
			t.Errorf("GetWord did not fault at addr: %d", addr)
		}
	}
	if mem.PutWord(252, 1) {
		t.Error("PutWord faulted on last valid word")
	}
}

// Check byte range access and bounds.
func TestBytes(t *testing.T) {
	mem := New(32)
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if mem.WriteBytes(20, data) {
		t.Error("WriteBytes faulted")
	}
	b, fault := mem.ReadBytes(20, 10)
	if fault {
		t.Error("ReadBytes faulted")
	}
	for i := range data {
		if b[i] != data[i] {
			t.Errorf("Byte %d not correct got: %02x expected: %02x", i, b[i], data[i])
		}
	}

	if !mem.WriteBytes(25, data) {
		t.Error("WriteBytes did not fault past end")
	}
	if _, fault := mem.ReadBytes(30, 10); !fault {
		t.Error("ReadBytes did not fault past end")
	}
	if _, fault := mem.ReadBytes(0xffffffff, 10); !fault {
		t.Error("ReadBytes did not fault on wrap")
	}
}

// Check size and address range report.
func TestSize(t *testing.T) {
	mem := New(4096)
	if mem.Size() != 4096 {
		t.Errorf("Size not correct got: %d expected: %d", mem.Size(), 4096)
	}
	if !mem.CheckAddr(4095) {
		t.Error("CheckAddr 4095 should be in range")
	}
	if mem.CheckAddr(4096) {
		t.Error("CheckAddr 4096 should be out of range")
	}
}
