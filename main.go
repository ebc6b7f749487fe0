/*
 * goldOS - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/ababoin07/goldOS/command/reader"
	config "github.com/ababoin07/goldOS/config/configparser"
	core "github.com/ababoin07/goldOS/emu/core"
	cpu "github.com/ababoin07/goldOS/emu/cpu"
	logger "github.com/ababoin07/goldOS/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optImage := getopt.StringLong("image", 'f', "", "Program image file")
	optMemory := getopt.StringLong("memory", 'm', "64K", "Memory size, K or M suffix")
	optPC := getopt.StringLong("pc", 'p', "0", "Initial program counter")
	optSP := getopt.StringLong("sp", 's', "", "Initial stack pointer, default top of memory")
	optBase := getopt.StringLong("base", 'b', "0", "Image load address")
	optSteps := getopt.StringLong("steps", 'n', "1000000", "Step budget")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optMonitor := getopt.BoolLong("monitor", 'i', "Interactive monitor")
	optTrace := getopt.BoolLong("trace", 't', "Trace executed instructions to the log")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	machineConfig := config.Default()
	if *optConfig != "" {
		var err error
		machineConfig, err = config.LoadConfigFile(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: "+err.Error())
			os.Exit(1)
		}
	}
	if err := applyFlags(machineConfig, optImage, optMemory, optPC, optSP,
		optBase, optSteps, optLogFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}

	var file *os.File
	if machineConfig.LogFile != "" {
		file, _ = os.Create(machineConfig.LogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(Logger)

	Logger.Info("goldOS started")

	var image []byte
	if machineConfig.Image != "" {
		var err error
		image, err = os.ReadFile(machineConfig.Image)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	} else if !*optMonitor {
		Logger.Error("Please specify a program image")
		os.Exit(1)
	}

	machine, err := core.NewCore(machineConfig.MemSize, image, machineConfig.Base,
		machineConfig.PC, machineConfig.SP)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	machine.CPU().SetStackFloor(machineConfig.StackFloor)
	machine.CPU().SetTrace(*optTrace)

	if *optMonitor {
		// SIGINT stops a running go, the prompt handles control-C itself.
		monChan := make(chan os.Signal, 1)
		signal.Notify(monChan, syscall.SIGINT)
		go func() {
			for range monChan {
				machine.Stop()
			}
		}()
		reader.ConsoleReader(machine)
		return
	}

	// Stop the machine cooperatively on SIGINT or SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		machine.Stop()
	}()

	count, trap := machine.Run(machineConfig.Steps)
	dumpState(machine, count, trap)
	os.Exit(exitCode(trap))
}

// Fold command line flags over the configuration. A flag that was
// given on the command line wins over the configuration file.
func applyFlags(machineConfig *config.Config, image, mem, pc, sp, base, steps, logFile *string) error {
	var err error
	if getopt.Lookup("image").Seen() {
		machineConfig.Image = *image
	}
	if getopt.Lookup("memory").Seen() {
		if machineConfig.MemSize, err = config.ParseSize(*mem); err != nil {
			return err
		}
		if !getopt.Lookup("sp").Seen() && *sp == "" {
			machineConfig.SP = machineConfig.MemSize
		}
	}
	if getopt.Lookup("pc").Seen() {
		if machineConfig.PC, err = config.ParseSize(*pc); err != nil {
			return err
		}
	}
	if getopt.Lookup("sp").Seen() {
		if machineConfig.SP, err = config.ParseSize(*sp); err != nil {
			return err
		}
	}
	if getopt.Lookup("base").Seen() {
		if machineConfig.Base, err = config.ParseSize(*base); err != nil {
			return err
		}
	}
	if getopt.Lookup("steps").Seen() {
		var budget uint32
		if budget, err = config.ParseSize(*steps); err != nil {
			return err
		}
		machineConfig.Steps = uint64(budget)
	}
	if getopt.Lookup("log").Seen() {
		machineConfig.LogFile = *logFile
	}
	return nil
}

// Final machine state report.
func dumpState(machine *core.Core, count uint64, trap cpu.Trap) {
	machCPU := machine.CPU()
	switch trap {
	case cpu.TrapNone:
		Logger.Info(fmt.Sprintf("Stopped after %d steps", count))
	case cpu.TrapBudget:
		Logger.Info(fmt.Sprintf("Budget of %d steps exhausted", count))
	default:
		Logger.Warn(fmt.Sprintf("Trap: %s at %08x after %d steps", trap, machCPU.PC(), count))
	}

	for i := range 16 {
		fmt.Printf("R%-2d %08x  ", i, machCPU.Register(i))
		if (i % 4) == 3 {
			fmt.Println()
		}
	}
	fmt.Printf("PC  %08x  SP  %08x  steps %d\n", machCPU.PC(), machCPU.SP(), machCPU.Steps())
}

// A run that ends by budget or a cooperative stop is a clean halt,
// anything else reports the trap kind in the exit status.
func exitCode(trap cpu.Trap) int {
	switch trap {
	case cpu.TrapNone, cpu.TrapBudget:
		return 0
	default:
		return int(trap)
	}
}
