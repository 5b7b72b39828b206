package main

import (
	"fmt"

	"github.com/DeusData/react-analyzer/internal/selfupdate"
)

// checkUpdate compares the running version against the newest GitHub
// release. Network failures are silent: the check is best-effort.
func checkUpdate() {
	current, outdated, err := selfupdate.CheckLatest(version)
	if err != nil {
		return
	}
	fmt.Println(selfupdate.UpdateNotice(version, current, outdated))
}
