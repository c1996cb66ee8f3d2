package version

import "fmt"

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X github.com/avtopark/fleetboard/internal/version.Version=1.2.3"
var Version = "1.0"

// Banner prints identifying information about the server.
func Banner() string {
	return fmt.Sprintf("%sFleetboard (v%s)\n", product(), Version)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Fleetboard
	const s = `
  _____ _           _   _                         _
 |  ___| | ___  ___| |_| |__   ___   __ _ _ __ __| |
 | |_  | |/ _ \/ _ \ __| '_ \ / _ \ / _` + "`" + ` | '__/ _` + "`" + ` |
 |  _| | |  __/  __/ |_| |_) | (_) | (_| | | | (_| |
 |_|   |_|\___|\___|\__|_.__/ \___/ \__,_|_|  \__,_|

`
	return s
}
