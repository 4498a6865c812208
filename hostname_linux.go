//go:build linux

package main

import (
	"log"

	"golang.org/x/sys/unix"
)

// setHostname applies name to the host so mDNS announces it. Needs
// CAP_SYS_ADMIN; failure is only logged.
func setHostname(name string) {
	if err := unix.Sethostname([]byte(name)); err != nil {
		log.Printf("Couldn't set hostname to %q: %v\n", name, err)
		return
	}
	log.Printf("Hostname set to %s\n", name)
}
