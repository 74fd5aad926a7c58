package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/config"
	"github.com/nochelabs/botilleria/internal/adminapi"
	"github.com/nochelabs/botilleria/internal/app"
	"github.com/nochelabs/botilleria/internal/webserver"
)

var (
	h        bool
	showVer  bool
	conffile string
)

var (
	// set via -ldflags at build time
	BuildVersion = "dev"
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&showVer, "v", false, "print version")
	flag.StringVar(&conffile, "c", "", "config file path")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		return
	}
	if showVer {
		fmt.Println(BuildVersion)
		return
	}

	appCfg := config.LoadConfig(conffile)

	application := app.NewApplication(appCfg)
	application.Init(appCfg)
	defer application.Release()

	webserver.Init(application)
	adminapi.RegisterRoutes()

	go func() {
		if err := webserver.Start(); err != nil {
			zap.S().Fatalf("web server failed: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	zap.S().Info("shutting down")
}
