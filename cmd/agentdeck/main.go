package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mtzanidakis/agentdeck/internal/config"
	"github.com/mtzanidakis/agentdeck/internal/protocol"
	"github.com/mtzanidakis/agentdeck/internal/shell"
)

var version = "dev"

func parseArgs(args []string) map[string]string {
	result := make(map[string]string)
	for i := 0; i < len(args); i++ {
		if len(args[i]) > 2 && args[i][:2] == "--" && i+1 < len(args) {
			result[args[i][2:]] = args[i+1]
			i++
		}
	}
	return result
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, `  agentdeck start --type "..." --name "..." --dir "..." [--prompt "..."] [--model "..."]`)
	fmt.Fprintln(os.Stderr, "  agentdeck list")
	fmt.Fprintln(os.Stderr, `  agentdeck get --id "..."`)
	fmt.Fprintln(os.Stderr, `  agentdeck stop --id "..."`)
	fmt.Fprintln(os.Stderr, `  agentdeck send --id "..." --message "..."`)
	fmt.Fprintln(os.Stderr, "  agentdeck version")
	os.Exit(1)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func connect() *shell.Shell {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	sh := shell.New(cfg.Runtime)
	if err := sh.Connect(context.Background()); err != nil {
		fatal("%v", err)
	}
	return sh
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	command := os.Args[1]
	rest := os.Args[2:]

	switch command {
	case "version":
		fmt.Printf("agentdeck %s\n", version)

	case "start":
		args := parseArgs(rest)
		if args["type"] == "" || args["name"] == "" || args["dir"] == "" {
			fatal("--type, --name, and --dir are required")
		}
		sh := connect()
		ag, err := sh.StartAgent(protocol.AgentConfig{
			AgentType:  args["type"],
			Name:       args["name"],
			WorkingDir: args["dir"],
			Prompt:     args["prompt"],
			Model:      args["model"],
		})
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Agent started: %s\n", ag.ID)

	case "list":
		sh := connect()
		agents, err := sh.ListAgents()
		if err != nil {
			fatal("%v", err)
		}
		if len(agents) == 0 {
			fmt.Println("No agents.")
		} else {
			for _, ag := range agents {
				fmt.Printf("  %s  %s  %s  [%s]\n", ag.ID, ag.Status, ag.Name, ag.AgentType)
			}
		}

	case "get":
		args := parseArgs(rest)
		if args["id"] == "" {
			fatal("--id is required")
		}
		sh := connect()
		ag, err := sh.GetAgent(args["id"])
		if err != nil {
			fatal("%v", err)
		}
		if ag == nil {
			fmt.Println("Agent not found.")
		} else {
			fmt.Printf("  id:          %s\n", ag.ID)
			fmt.Printf("  type:        %s\n", ag.AgentType)
			fmt.Printf("  name:        %s\n", ag.Name)
			fmt.Printf("  status:      %s\n", ag.Status)
			fmt.Printf("  working dir: %s\n", ag.WorkingDir)
			fmt.Printf("  started at:  %s\n", ag.StartedAt)
		}

	case "stop":
		args := parseArgs(rest)
		if args["id"] == "" {
			fatal("--id is required")
		}
		sh := connect()
		if err := sh.StopAgent(args["id"]); err != nil {
			fatal("%v", err)
		}
		fmt.Println("Agent stopped.")

	case "send":
		args := parseArgs(rest)
		if args["id"] == "" || args["message"] == "" {
			fatal("--id and --message are required")
		}
		sh := connect()
		if err := sh.SendMessage(args["id"], args["message"]); err != nil {
			fatal("%v", err)
		}
		fmt.Println("Message sent.")

	default:
		fatal("unknown command: %s", command)
	}
}
