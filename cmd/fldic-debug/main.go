/*
Package main implements fldic-debug, the minimal interactive debug
frontend for the suggestion engine.

fldic-debug loads one or more base dictionaries and an optional user
dictionary, then reads words from stdin and prints their ranked
suggestions and spelling verdict. It stands in for a full terminal-UI
debug frontend: just enough of a CLI to exercise Session.Suggest and
Session.Spell by hand while developing the core, in the same spirit as
a "-c" CLI mode.

It can also run as a MessagePack IPC server (see pkg/ipc) for driving the
engine from another process, selected with -serve.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/fldic/internal/debugui"
	"github.com/bastiangx/fldic/pkg/config"
	"github.com/bastiangx/fldic/pkg/ipc"
	"github.com/bastiangx/fldic/pkg/keymap"
	"github.com/bastiangx/fldic/pkg/session"
)

const (
	version = "0.1.0-draft"
	appName = "fldic-debug"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	baseDictPath := flag.String("base", "", "Path to a base fldic dictionary file (repeatable via comma separation)")
	userDictPath := flag.String("user", "", "Path to the mutable user dictionary file")
	keymapPath := flag.String("keymap", "", "Path to a key-proximity JSON asset")
	configPath := flag.String("config", "fldic.toml", "Path to config.toml")
	maxCount := flag.Int("limit", 0, "max_suggestion_count override (0 uses config default)")
	allowOffensive := flag.Bool("allow-offensive", false, "Set the allow_possibly_offensive request flag")
	serve := flag.Bool("serve", false, "Run as a MessagePack IPC server over stdin/stdout instead of the interactive loop")
	debug := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Show current version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, version)
		return
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to init config: %v", err)
	}

	proximity := keymap.Empty()
	if *keymapPath != "" {
		proximity, err = keymap.Load(*keymapPath)
		if err != nil {
			log.Fatalf("failed to load key proximity map: %v", err)
		}
	}

	sess := session.New(cfg, proximity)

	if *baseDictPath == "" {
		log.Warn("no -base dictionary given, running with an empty base set")
	} else {
		for _, p := range strings.Split(*baseDictPath, ",") {
			if err := sess.LoadBaseDictionary(strings.TrimSpace(p), ""); err != nil {
				log.Fatalf("failed to load base dictionary %s: %v", p, err)
			}
		}
	}
	if *userDictPath != "" {
		if err := sess.LoadUserDictionary(*userDictPath); err != nil {
			log.Fatalf("failed to load user dictionary: %v", err)
		}
	}

	if *serve {
		srv := ipc.NewServer(sess)
		if err := srv.Start(); err != nil {
			log.Fatalf("ipc server error: %v", err)
		}
		return
	}

	limit := *maxCount
	if limit <= 0 {
		limit = cfg.Session.DefaultMaxSuggestionCount
	}
	flags := session.NewRequestFlags(limit, *allowOffensive, false, false, 0, 0)

	handler := debugui.NewInputHandler(sess, flags)
	if err := handler.Start(); err != nil {
		log.Debugf("input loop ended: %v", err)
	}
}
