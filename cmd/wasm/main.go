//go:build js && wasm

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-stealth/pkg/stealth"
)

func main() {
	c := make(chan struct{})

	fmt.Println("Go Stealth WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoStealth", map[string]interface{}{
		"NewSpendKey":  js.FuncOf(NewSpendKey),
		"DeriveKeys":   js.FuncOf(DeriveKeys),
		"Announce":     js.FuncOf(Announce),
		"Check":        js.FuncOf(Check),
		"DeriveSecret": js.FuncOf(DeriveSecret),
	})

	<-c
}

// NewSpendKey generates a spend key.
// Arguments:
// 0: JSON suite config, e.g. {"group":"ristretto255","hash":"sha256"}
// Returns:
// hex spend key or "error: ..."
func NewSpendKey(this js.Value, args []js.Value) interface{} {
	suite, err := suiteArg(args, 1)
	if err != nil {
		return errString(err)
	}
	k, err := suite.GenerateSpendKey(rand.Reader)
	if err != nil {
		return errString(err)
	}
	return hex.EncodeToString(k.Bytes())
}

// DeriveKeys returns the view key and stealth address of a spend key.
// Arguments:
// 0: JSON suite config
// 1: hex spend key
// Returns:
// JSON {"viewKey": "...", "address": "..."}
func DeriveKeys(this js.Value, args []js.Value) interface{} {
	suite, err := suiteArg(args, 2)
	if err != nil {
		return errString(err)
	}
	k, err := parseHex(args[1], suite.ParseSpendKey)
	if err != nil {
		return errString(err)
	}
	return marshal(map[string]string{
		"viewKey": hex.EncodeToString(k.ViewKey().Bytes()),
		"address": hex.EncodeToString(k.StealthAddress().Bytes()),
	})
}

// Announce runs the sender side against a stealth address.
// Arguments:
// 0: JSON suite config
// 1: hex stealth address
// Returns:
// JSON {"r": "...", "public": "...", "viewTag": n, "announcement": "..."}
func Announce(this js.Value, args []js.Value) interface{} {
	suite, err := suiteArg(args, 2)
	if err != nil {
		return errString(err)
	}
	addr, err := parseHex(args[1], suite.ParseStealthAddress)
	if err != nil {
		return errString(err)
	}
	a, err := suite.Announce(addr, rand.Reader)
	if err != nil {
		return errString(err)
	}
	return marshal(map[string]interface{}{
		"r":            hex.EncodeToString(a.R.Bytes()),
		"public":       hex.EncodeToString(a.Public.Bytes()),
		"viewTag":      a.ViewTag,
		"announcement": hex.EncodeToString(a.Bytes()),
	})
}

// Check tests an announcement against a view key.
// Arguments:
// 0: JSON suite config
// 1: hex view key
// 2: hex announcement
// Returns:
// bool or "error: ..."
func Check(this js.Value, args []js.Value) interface{} {
	suite, err := suiteArg(args, 3)
	if err != nil {
		return errString(err)
	}
	vk, err := parseHex(args[1], suite.ParseViewKey)
	if err != nil {
		return errString(err)
	}
	a, err := parseHex(args[2], suite.ParseAnnouncement)
	if err != nil {
		return errString(err)
	}
	return suite.CheckAnnouncement(vk, a)
}

// DeriveSecret recovers the one-time secret for R.
// Arguments:
// 0: JSON suite config
// 1: hex spend key
// 2: hex R
// Returns:
// hex secret or "error: ..."
func DeriveSecret(this js.Value, args []js.Value) interface{} {
	suite, err := suiteArg(args, 3)
	if err != nil {
		return errString(err)
	}
	k, err := parseHex(args[1], suite.ParseSpendKey)
	if err != nil {
		return errString(err)
	}
	r, err := parseHex(args[2], suite.ParseEphemeralReference)
	if err != nil {
		return errString(err)
	}
	return hex.EncodeToString(suite.DeriveEphemeralSecret(k, r).Bytes())
}

// Helpers

func suiteArg(args []js.Value, want int) (*stealth.Suite, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}
	var cfg stealth.Config
	if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
		return nil, fmt.Errorf("invalid config json: %w", err)
	}
	return cfg.Suite()
}

func parseHex[T any](v js.Value, parse func([]byte) (T, error)) (T, error) {
	b, err := hex.DecodeString(v.String())
	if err != nil {
		var zero T
		return zero, fmt.Errorf("invalid hex: %w", err)
	}
	return parse(b)
}

func errString(err error) string {
	return fmt.Sprintf("error: %v", err)
}

func marshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return errString(err)
	}
	return string(b)
}
