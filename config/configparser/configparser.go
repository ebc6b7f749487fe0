/*
 * goldOS - Machine configuration file parser.
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

package configparser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <option> <whitespace> <value>
 * <option> := 'memory' | 'pc' | 'sp' | 'stack' | 'base' |
 *             'steps' | 'image' | 'logfile'
 * <value> ::= <number> | <number>K | <number>M | <string>
 * <number> ::= decimal | 0x hexadecimal
 */

// Machine settings read from a configuration file. Flags given on
// the command line override anything set here.
type Config struct {
	MemSize    uint32 // Memory size in bytes.
	PC         uint32 // Initial program counter.
	SP         uint32 // Initial stack pointer.
	StackFloor uint32 // Lowest address the stack may grow to.
	Base       uint32 // Load address of the image.
	Steps      uint64 // Step budget for run.
	Image      string // Program image path.
	LogFile    string // Log file path.

	spSet bool
}

// Defaults: 64K of memory, stack at the top, a million steps.
func Default() *Config {
	return &Config{
		MemSize: 64 * 1024,
		SP:      64 * 1024,
		Steps:   1000 * 1000,
	}
}

var lineNumber int

// Parse a number, decimal or 0x hex, with optional K or M suffix.
func ParseSize(value string) (uint32, error) {
	mult := uint64(1)
	upper := strings.ToUpper(value)
	switch {
	case strings.HasSuffix(upper, "K"):
		mult = 1024
		value = value[:len(value)-1]
	case strings.HasSuffix(upper, "M"):
		mult = 1024 * 1024
		value = value[:len(value)-1]
	}
	num, err := parseNumber(value)
	if err != nil {
		return 0, err
	}
	result := uint64(num) * mult
	if result > 0xffffffff {
		return 0, fmt.Errorf("value too large: %s", value)
	}
	return uint32(result), nil
}

// Parse a plain number, decimal or 0x hex.
func parseNumber(value string) (uint32, error) {
	base := 10
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		base = 16
		value = value[2:]
	}
	num, err := strconv.ParseUint(value, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", value)
	}
	return uint32(num), nil
}

// Process one configuration line.
func (config *Config) parseLine(line string) error {
	// Strip comment and surrounding space.
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	option := strings.Fields(line)[0]
	value := strings.TrimSpace(line[len(option):])
	if value == "" {
		return fmt.Errorf("line %d: option %s needs a value", lineNumber, option)
	}

	var err error
	switch strings.ToLower(option) {
	case "memory":
		config.MemSize, err = ParseSize(value)
	case "pc":
		config.PC, err = parseNumber(value)
	case "sp":
		config.SP, err = ParseSize(value)
		config.spSet = true
	case "stack":
		config.StackFloor, err = ParseSize(value)
	case "base":
		config.Base, err = parseNumber(value)
	case "steps":
		var steps uint32
		steps, err = ParseSize(value)
		config.Steps = uint64(steps)
	case "image":
		config.Image = value
	case "logfile":
		config.LogFile = value
	default:
		return fmt.Errorf("line %d: unknown option: %s", lineNumber, option)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNumber, err)
	}
	return nil
}

// LoadConfigFile reads a configuration file into a Config starting
// from the defaults. Unless the file sets sp, the stack starts at
// the top of memory.
func LoadConfigFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	lineNumber = 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		if err := config.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !config.spSet {
		config.SP = config.MemSize
	}
	return config, nil
}
