//go:build !unix

package cmd

import "os"

func terminalSize(*os.File) (width, height int, ok bool) { return 0, 0, false }
