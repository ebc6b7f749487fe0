/*
 * goldOS - Monitor command interface
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

package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	config "github.com/ababoin07/goldOS/config/configparser"
	"github.com/ababoin07/goldOS/emu/core"
	"github.com/ababoin07/goldOS/emu/cpu"
	dis "github.com/ababoin07/goldOS/emu/disassemble"
	"github.com/ababoin07/goldOS/emu/loader"
	op "github.com/ababoin07/goldOS/emu/opcodemap"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	process func(*cmdLine, *core.Core) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "step", min: 2, process: step},
	{name: "go", min: 2, process: run},
	{name: "continue", min: 1, process: run},
	{name: "registers", min: 3, process: registers},
	{name: "examine", min: 1, process: examine},
	{name: "deposit", min: 3, process: deposit},
	{name: "list", min: 2, process: list},
	{name: "load", min: 3, process: load},
	{name: "reset", min: 3, process: reset},
	{name: "quit", min: 4, process: quit},
}

// Execute the command line given.
func ProcessCommand(commandLine string, machine *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" && line.isEOL() {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].process(&line, machine)
}

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	matchList := matchList(name)
	matches := make([]string, len(matchList))
	for i, m := range matchList {
		matches[i] = m.name
	}
	return matches
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	l := 0
	for l = range len(command) {
		if match.name[l] != command[l] {
			return false
		}
	}
	return (l + 1) >= match.min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	// If command empty just return.
	if command == "" {
		return []cmd{}
	}

	// Try and match one command.
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for {
		if line.pos >= len(line.line) {
			return
		}
		if unicode.IsSpace(rune(line.line[line.pos])) {
			line.pos++
			continue
		}
		return
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Parse command or option name.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}

	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return strings.ToLower(value)
}

// Parse a number, decimal or 0x hex, with optional K or M suffix.
func (line *cmdLine) getNumber() (uint32, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("number missing")
	}
	return config.ParseSize(word)
}

// Parse a file path.
func (line *cmdLine) getPath() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}

	value := ""
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return value
}

// Report where a run ended.
func reportStop(machine *core.Core, count uint64, trap cpu.Trap) {
	switch trap {
	case cpu.TrapNone:
		fmt.Printf("Stopped after %d steps at %08x\n", count, machine.CPU().PC())
	case cpu.TrapBudget:
		fmt.Printf("Budget of %d steps exhausted at %08x\n", count, machine.CPU().PC())
	default:
		fmt.Printf("Trap: %s at %08x\n", trap, machine.CPU().PC())
	}
}

// step [n] - execute single instructions.
func step(line *cmdLine, machine *core.Core) (bool, error) {
	count := uint32(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	for range count {
		pc := machine.CPU().PC()
		inst, fault := machine.Memory().ReadBytes(pc, op.InstLen)
		if !fault {
			if symbolic, err := dis.Disassemble(inst); err == nil {
				fmt.Printf("%08x: %s\n", pc, symbolic)
			}
		}
		if trap := machine.Step(); trap != cpu.TrapNone {
			fmt.Printf("Trap: %s at %08x\n", trap, machine.CPU().PC())
			return false, nil
		}
	}
	return false, nil
}

// go [n] - run with a step budget.
func run(line *cmdLine, machine *core.Core) (bool, error) {
	budget := uint32(1000 * 1000)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		budget, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	count, trap := machine.Run(uint64(budget))
	reportStop(machine, count, trap)
	return false, nil
}

// registers - dump the register file, PC and SP.
func registers(_ *cmdLine, machine *core.Core) (bool, error) {
	machCPU := machine.CPU()
	for i := range 16 {
		fmt.Printf("R%-2d %08x  ", i, machCPU.Register(i))
		if (i % 4) == 3 {
			fmt.Println()
		}
	}
	fmt.Printf("PC  %08x  SP  %08x  steps %d\n", machCPU.PC(), machCPU.SP(), machCPU.Steps())
	return false, nil
}

// examine addr [len] - dump memory words.
func examine(line *cmdLine, machine *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	count := uint32(1)
	line.skipSpace()
	if !line.isEOL() {
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	for i := range count {
		value, fault := machine.Memory().GetWord(addr + 4*i)
		if fault {
			return false, fmt.Errorf("address out of range: %08x", addr+4*i)
		}
		fmt.Printf("%08x: %08x\n", addr+4*i, value)
	}
	return false, nil
}

// deposit addr word... - write memory words.
func deposit(line *cmdLine, machine *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}

	wrote := false
	for {
		line.skipSpace()
		if line.isEOL() {
			break
		}
		value, err := line.getNumber()
		if err != nil {
			return false, err
		}
		if machine.Memory().PutWord(addr, value) {
			return false, fmt.Errorf("address out of range: %08x", addr)
		}
		addr += 4
		wrote = true
	}
	if !wrote {
		return false, errors.New("deposit needs at least one value")
	}
	return false, nil
}

// list [addr] [n] - disassemble instructions.
func list(line *cmdLine, machine *core.Core) (bool, error) {
	addr := machine.CPU().PC()
	count := uint32(8)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		addr, err = line.getNumber()
		if err != nil {
			return false, err
		}
		line.skipSpace()
		if !line.isEOL() {
			count, err = line.getNumber()
			if err != nil {
				return false, err
			}
		}
	}

	for range count {
		inst, fault := machine.Memory().ReadBytes(addr, op.InstLen)
		if fault {
			return false, fmt.Errorf("address out of range: %08x", addr)
		}
		symbolic, err := dis.Disassemble(inst)
		if err != nil {
			symbolic = err.Error()
		}
		fmt.Printf("%08x: %s\n", addr, symbolic)
		addr += op.InstLen
	}
	return false, nil
}

// load file [base] - load a program image.
func load(line *cmdLine, machine *core.Core) (bool, error) {
	path := line.getPath()
	if path == "" {
		return false, errors.New("load needs a file name")
	}
	base := uint32(0)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		base, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	size, err := loader.Load(machine.Memory(), path, base)
	if err != nil {
		return false, err
	}
	fmt.Printf("Loaded %d bytes at %08x\n", size, base)
	return false, nil
}

// reset - return the CPU to its initial state.
func reset(_ *cmdLine, machine *core.Core) (bool, error) {
	machine.Reset()
	return false, nil
}

// quit - leave the monitor.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	return true, nil
}
