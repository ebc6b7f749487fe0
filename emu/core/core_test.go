/*
 * goldOS - Machine core test cases.
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
	"testing"

	"github.com/ababoin07/goldOS/emu/cpu"
)

// LC #42,R0 then a tight loop.
var testProgram = []byte{
	0x00, 0x02, 0x00, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00, 0x00, // LC #42,R0
	0x00, 0x20, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00, // JMP 0x0a
}

// Check machine construction loads the program.
func TestNewCore(t *testing.T) {
	machine, err := NewCore(4096, testProgram, 0, 0, 4096)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	value, fault := machine.Memory().GetWord(2)
	if fault || value != 42 {
		t.Errorf("Program not loaded got: %d expected: %d", value, 42)
	}

	// An image bigger than memory is rejected.
	if _, err := NewCore(8, testProgram, 0, 0, 8); err == nil {
		t.Error("Oversize image did not fail")
	}

	// A base that pushes the image off the end is rejected.
	if _, err := NewCore(4096, testProgram, 4090, 0, 4096); err == nil {
		t.Error("Bad base did not fail")
	}
}

// Check a run stops when the budget is exhausted.
func TestRunBudget(t *testing.T) {
	machine, err := NewCore(4096, testProgram, 0, 0, 4096)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	count, trap := machine.Run(100)
	if trap != cpu.TrapBudget {
		t.Errorf("Run trap not correct got: %s expected: %s", trap, cpu.TrapBudget)
	}
	if count != 100 {
		t.Errorf("Run count not correct got: %d expected: %d", count, 100)
	}
	if machine.CPU().Register(0) != 42 {
		t.Errorf("R0 not correct got: %d expected: %d", machine.CPU().Register(0), 42)
	}
}

// Check a run reports a trap with its step count.
func TestRunTrap(t *testing.T) {
	program := []byte{
		0x00, 0x02, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00, // LC #5,R0
		0x00, 0x0e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, // DIV R0,R1
	}
	machine, err := NewCore(4096, program, 0, 0, 4096)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	count, trap := machine.Run(100)
	if trap != cpu.TrapDivZero {
		t.Errorf("Run trap not correct got: %s expected: %s", trap, cpu.TrapDivZero)
	}
	if count != 1 {
		t.Errorf("Run count not correct got: %d expected: %d", count, 1)
	}
	if machine.CPU().PC() != 10 {
		t.Errorf("PC not correct got: %d expected: %d", machine.CPU().PC(), 10)
	}
}

// Check the cooperative stop flag ends a run.
func TestStop(t *testing.T) {
	machine, err := NewCore(4096, testProgram, 0, 0, 4096)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	// The program loops forever, only the stop flag can end the run.
	// Run clears the flag on entry, so keep raising it until it lands.
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				machine.Stop()
			}
		}
	}()
	count, trap := machine.Run(1 << 62)
	close(done)
	if trap != cpu.TrapNone {
		t.Errorf("Stopped run trap not correct got: %s expected: %s", trap, cpu.TrapNone)
	}
	if count == 1<<62 {
		t.Error("Run consumed the whole budget")
	}
}

// Check reset restarts the loaded program.
func TestCoreReset(t *testing.T) {
	machine, err := NewCore(4096, testProgram, 0, 0, 4096)
	if err != nil {
		t.Fatalf("NewCore failed: %v", err)
	}
	machine.Run(10)
	machine.Reset()
	if machine.CPU().PC() != 0 || machine.CPU().Register(0) != 0 {
		t.Error("Reset did not restore initial state")
	}
	count, trap := machine.Run(5)
	if trap != cpu.TrapBudget || count != 5 {
		t.Errorf("Rerun not correct got: %d steps trap %s", count, trap)
	}
	if machine.CPU().Register(0) != 42 {
		t.Errorf("R0 not correct got: %d expected: %d", machine.CPU().Register(0), 42)
	}
}
