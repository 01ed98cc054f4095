// Example program demonstrating the mvndeploy library API.
//
// Run from a Maven project repository:
//
//	go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/mvntools/mvndeploy/pkg/mvndeploy"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})

	err := mvndeploy.Deploy(context.Background(), mvndeploy.Options{
		ProjectPath: ".",
		Revisions:   []string{"HEAD"},
		Branch:      "gh-pages",
		Logger:      &logger,
	})
	if err != nil {
		log.Fatalf("deployment failed: %v", err)
	}

	fmt.Println("Deployment was successful.")
}
