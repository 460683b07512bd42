//go:build !unix

package tool

import "os/exec"

func setProcessGroup(_ *exec.Cmd) {}
