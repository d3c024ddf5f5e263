//go:build !(tinygo && bootdebug)

package app

import "dial/hal"

// Boot diagnostics are only compiled into bootdebug firmware.
func bootDiagStart(hal.HAL)      {}
func bootScreen(hal.HAL, string) {}
