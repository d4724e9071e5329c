// Package startup parses process arguments and announces application
// startup on the event bus. It also handles arguments forwarded by a second
// instance of the application.
package startup

import (
	"strconv"
	"strings"
)

// AutoFlag marks a launch triggered by the operating system's autostart.
const AutoFlag = "--auto"

// LaunchKey introduces the id of a launcher to start, as "launch <id>".
const LaunchKey = "launch"

// Args is the parsed form of the process arguments.
type Args struct {
	Auto      bool
	LaunchID  int64
	HasLaunch bool
}

// ParseArgs recognizes "--auto" and a launcher id given as "launch <id>",
// "--launch <id>" or "--launch=<id>". The first well-formed launch id wins.
// Anything else, including an id that is not an integer, is ignored.
func ParseArgs(argv []string) Args {
	var a Args
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == AutoFlag:
			a.Auto = true
		case arg == LaunchKey || arg == "--"+LaunchKey:
			if i+1 >= len(argv) {
				continue
			}
			i++
			a.setLaunch(argv[i])
		case strings.HasPrefix(arg, "--"+LaunchKey+"="):
			a.setLaunch(strings.TrimPrefix(arg, "--"+LaunchKey+"="))
		}
	}
	return a
}

func (a *Args) setLaunch(value string) {
	if a.HasLaunch {
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return
	}
	a.LaunchID = id
	a.HasLaunch = true
}
