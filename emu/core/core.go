/*
 * goldOS - Machine core.
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

package core

import (
	"sync/atomic"

	"github.com/ababoin07/goldOS/emu/cpu"
	"github.com/ababoin07/goldOS/emu/loader"
	"github.com/ababoin07/goldOS/emu/memory"
)

// Core owns one machine: its memory and its CPU. The machine is
// single threaded, Step and Run must come from one goroutine. Stop is
// the only call safe from elsewhere, it raises a cooperative flag
// that Run checks between instructions.
type Core struct {
	mem    *memory.Memory
	cpu    *cpu.CPU
	initPC uint32
	initSP uint32
	stop   atomic.Bool
}

// Create a machine with size bytes of memory, the program image
// loaded at base, and execution starting at pc with the stack at sp.
func NewCore(size uint32, program []byte, base, pc, sp uint32) (*Core, error) {
	mem := memory.New(size)
	if err := loader.LoadBytes(mem, program, base); err != nil {
		return nil, err
	}
	return &Core{
		mem:    mem,
		cpu:    cpu.New(mem, pc, sp),
		initPC: pc,
		initSP: sp,
	}, nil
}

// Execute one instruction.
func (core *Core) Step() cpu.Trap {
	return core.cpu.Step()
}

// Run executes until a trap, the step budget runs out, or Stop is
// called. Returns the number of instructions retired and the trap
// that ended the run. A cooperative stop reports TrapNone.
func (core *Core) Run(maxSteps uint64) (uint64, cpu.Trap) {
	core.stop.Store(false)
	for count := uint64(0); count < maxSteps; count++ {
		if core.stop.Load() {
			return count, cpu.TrapNone
		}
		if trap := core.cpu.Step(); trap != cpu.TrapNone {
			return count, trap
		}
	}
	return maxSteps, cpu.TrapBudget
}

// Stop raises the cooperative stop flag. Safe from other goroutines.
func (core *Core) Stop() {
	core.stop.Store(true)
}

// Reset returns the CPU to its initial state. Memory keeps its
// contents so a loaded program can run again.
func (core *Core) Reset() {
	core.cpu.Reset(core.initPC, core.initSP)
}

// Memory returns the machine memory for inspection and deposit.
func (core *Core) Memory() *memory.Memory {
	return core.mem
}

// CPU returns the machine CPU for inspection.
func (core *Core) CPU() *cpu.CPU {
	return core.cpu
}
