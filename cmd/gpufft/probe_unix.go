//go:build unix

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// devices the GPU mailbox and peripheral mapping go through
var devices = []string{"/dev/vcio", "/dev/mem"}

func hostChecks(library string) []check {
	checks := []check{
		{"native engines built", cgoCheck()},
		{"running as root", rootCheck()},
	}

	for _, dev := range devices {
		checks = append(checks, check{"access " + dev, accessCheck(dev)})
	}

	checks = append(checks, check{"library " + library, fileCheck(library)})

	return checks
}

func rootCheck() error {
	if uid := unix.Geteuid(); uid != 0 {
		return fmt.Errorf("effective uid is %d, run with sudo -E", uid)
	}
	return nil
}

func accessCheck(path string) error {
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return errors.Wrap(err, "no read/write access")
	}
	return nil
}

func fileCheck(path string) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return errors.Wrap(err, "cannot stat")
	}

	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return errors.New("not a regular file")
	}

	return nil
}
