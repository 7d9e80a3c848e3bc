package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Concord.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Indigo-to-rose gradient, one color per line.
	s1 := termenv.String("   ____                              _ ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  / ___|___  _ __   ___ ___  _ __ __| |").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" | |   / _ \\| '_ \\ / __/ _ \\| '__/ _` |").Foreground(p.Color("#c084fc"))
	s4 := termenv.String(" | |__| (_) | | | | (_| (_) | | | (_| |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("  \\____\\___/|_| |_|\\___\\___/|_|  \\__,_|").Foreground(p.Color("#f472b6"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
