package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"cognitive-crawler/internal/version"
)

const dateLayout = "2006-01-02"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "now":
		fmt.Println(time.Now().Unix())
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: timeutil format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(time.Unix(ts, 0).UTC().Format(time.RFC3339))
	case "build":
		id, err := version.CalculateBuildID(dateArg(2))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(id)
	case "ldflags":
		// timeutil ldflags [date] [commit] [branch]
		date := dateArg(2)
		if _, err := version.CalculateBuildID(date); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		const pkg = "cognitive-crawler/internal/version"
		flags := fmt.Sprintf("-X %s.BuildDate=%s", pkg, date)
		if len(os.Args) > 3 {
			flags += fmt.Sprintf(" -X %s.BuildCommit=%s", pkg, os.Args[3])
		}
		if len(os.Args) > 4 {
			flags += fmt.Sprintf(" -X %s.BuildBranch=%s", pkg, os.Args[4])
		}
		fmt.Println(flags)
	default:
		printHelp()
	}
}

// dateArg - дата из аргумента i или сегодняшняя (UTC).
func dateArg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return time.Now().UTC().Format(dateLayout)
}

func printHelp() {
	fmt.Println(`Time Utility - время и номер сборки
Commands:
  now                               - текущее время в Unix формате
  format <timestamp>                - Unix время в RFC3339 (UTC)
  build [YYYY-MM-DD]                - номер сборки для даты (по умолчанию сегодня)
  ldflags [YYYY-MM-DD] [commit] [branch]
                                    - флаги -ldflags для go build`)
}
