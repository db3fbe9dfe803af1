// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcspv/headerdb"
	"github.com/btcsuite/btcspv/internal/log"
)

const (
	defaultDbType      = headerdb.TypeLevelDB
	defaultLogLevel    = "info"
	defaultLogFile     = "spvtool.log"
	headerDbNamePrefix = "headers"
)

var (
	spvtoolHomeDir  = btcutil.AppDataDir("spvtool", false)
	knownDbTypes    = headerdb.SupportedEngines()
	activeNetParams = &chaincfg.MainNetParams

	// Default global config.
	cfg = &config{
		DataDir:    filepath.Join(spvtoolHomeDir, "data"),
		DbType:     defaultDbType,
		DebugLevel: defaultLogLevel,
	}
)

// config defines the global configuration options.
type config struct {
	DataDir        string `short:"b" long:"datadir" description:"Directory to store the header database"`
	DbType         string `long:"dbtype" description:"Database backend to use for headers {leveldb, pebble}"`
	TestNet3       bool   `long:"testnet" description:"Use the test network"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir         string `long:"logdir" description:"Directory to log output; logs only go to standard output when unset"`
}

// validDbType returns whether or not dbType is a supported database type.
func validDbType(dbType string) bool {
	for _, knownType := range knownDbTypes {
		if dbType == knownType {
			return true
		}
	}

	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	return log.SupportedSubsystems()
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !log.ValidLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		log.SetLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := log.Level(subsysID); !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !log.ValidLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		log.SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// errShowSubsystems is returned by setupGlobalConfig after the subsystems were
// listed on request.
var errShowSubsystems = errors.New("subsystems listed")

// setupGlobalConfig examine the global configuration options for any conditions
// which are invalid as well as performs any addition setup necessary after the
// initial parse.
func setupGlobalConfig() error {
	// Multiple networks can't be selected simultaneously.
	// Count number of network flags passed; assign active network params
	// while we're at it
	numNets := 0
	if cfg.TestNet3 {
		numNets++
		activeNetParams = &chaincfg.TestNet3Params
	}
	if cfg.RegressionTest {
		numNets++
		activeNetParams = &chaincfg.RegressionNetParams
	}
	if numNets > 1 {
		return errors.New("the testnet and regtest params can't be " +
			"used together -- choose one of the two")
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		return errShowSubsystems
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}

	// Validate database type.
	if !validDbType(cfg.DbType) {
		str := "the specified database type [%v] is invalid -- " +
			"supported types %v"
		return fmt.Errorf(str, cfg.DbType, knownDbTypes)
	}

	// Append the network type to the data directory so it is "namespaced"
	// per network.  Headers of different networks never mix.
	cfg.DataDir = filepath.Join(cfg.DataDir, activeNetParams.Name)

	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, activeNetParams.Name,
			defaultLogFile)
		if err := log.InitLogRotator(logFile); err != nil {
			return err
		}
	}

	return nil
}

// loadHeaderDB opens the header database and returns a handle to it.
func loadHeaderDB() (*headerdb.HeaderDB, error) {
	// The database name is based on the database type.
	dbName := headerDbNamePrefix + "_" + cfg.DbType
	dbPath := filepath.Join(cfg.DataDir, dbName)

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, err
	}

	log.SpvtLog.Infof("Loading header database from '%s'", dbPath)
	engine, err := headerdb.Open(cfg.DbType, dbPath)
	if err != nil {
		return nil, err
	}

	log.SpvtLog.Info("Header database loaded")
	return headerdb.New(engine, activeNetParams.PowLimit), nil
}

// parseBigInt parses a decimal number or a hex number with a 0x prefix.
func parseBigInt(name, s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%s %q is not a decimal or 0x prefixed "+
			"hex number", name, s)
	}
	return n, nil
}

// decodeHex decodes the hex argument called name.
func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid hex: %w", name, err)
	}
	return b, nil
}

// checkArgs returns an error unless exactly want positional arguments were
// given.
func checkArgs(args []string, want int, usage string) error {
	if len(args) != want {
		return fmt.Errorf("expected %d arguments, got %d -- usage: %s",
			want, len(args), usage)
	}
	return nil
}
