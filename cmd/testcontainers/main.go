package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/bakery-api/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var outFilename string
	flag.StringVar(&outFilename, "o", "", "write the backend settings to this .env file")
	flag.Parse()

	usage := `
Run redis and the DB_TYPE database as testcontainers with the environment variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-o OUT_ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file
OUT_ENV_FILE_PATH: receives KV_* and DB_* settings for the running containers

example
  testcontainers -f /path/to/something/.env -o /tmp/backends.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	testContainers, err := helpers.CreateAllTestContainers(nil)
	if err != nil {
		log.Fatalf("Failed to create test containers: %v\n", err)
	}

	if outFilename != "" {
		// without STORAGE_BACKEND the file selects redis; add STORAGE_BACKEND=sql for the database
		if err := godotenv.Write(testContainers.Env, outFilename); err != nil {
			testContainers.Terminate(nil)
			log.Fatalf("Failed to write %s: %v\n", outFilename, err)
		}
		log.Printf("Wrote backend settings to %s\n", outFilename)
	}

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	testContainers.Terminate(nil)
}
