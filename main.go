package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/microqrart/internal/app"
	"github.com/pstuifzand/microqrart/internal/config"
	"github.com/pstuifzand/microqrart/internal/socket"
)

func main() {
	logFile, err := os.Create("mqa.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (logs snapshots and reconcile results)")
	reload := flag.Bool("reload", false, "Ask a running instance to reload its list")
	list := flag.Bool("list", false, "Print the list shown by a running instance")
	addRecord := flag.String("add", "", "Add a record to a running instance: \"title|source[|image]\"")
	flag.Parse()

	if *reload || *list || *addRecord != "" {
		if err := runClient(*reload, *list, *addRecord); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.EnableSocket(os.Getpid()); err != nil {
		log.Printf("Control socket disabled: %v", err)
	}

	if cfg.Source == config.SourceFile {
		if err := application.WatchDataFile(cfg.DataFile); err != nil {
			log.Printf("Not watching %s: %v", cfg.DataFile, err)
		}
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file named on the command line, or the one
// in the standard location
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if len(args) > 0 {
		cfg, err = config.LoadFromFile(args[0])
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// runClient sends commands to a running instance
func runClient(reload, list bool, addRecord string) error {
	socketPath, pid, err := socket.FindRunningInstance()
	if err != nil {
		return fmt.Errorf("no running microqrart instance found: %w", err)
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if addRecord != "" {
		parts := strings.SplitN(addRecord, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		if err := check(client.SendAddRecord(parts[0], parts[1], parts[2])); err != nil {
			return err
		}
		fmt.Println("Record added")
	}

	if reload {
		if err := check(client.SendReload()); err != nil {
			return err
		}
		fmt.Println("Reload requested")
	}

	if list {
		response, err := client.SendList()
		if err := check(response, err); err != nil {
			return err
		}
		for _, rec := range response.Records {
			fmt.Printf("%s\t%s\t%s\t%s\n", rec.ID, rec.Date, rec.Title, rec.Source)
		}
	}
	return nil
}

func check(response *socket.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}
	return nil
}
