//go:build !linux

package main

import "log"

func setHostname(name string) {
	log.Printf("Not setting hostname to %q on this platform\n", name)
}
