// Command render reads chat message JSON from stdin (or a file argument) and
// prints each message as styled terminal blocks. Accepts either a single
// message object or an array of messages.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chatrelay/models"
	"chatrelay/render"
)

func main() {
	width := flag.Int("width", 80, "render width in columns")
	flag.Parse()

	input := io.Reader(os.Stdin)
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %s: %v", args[0], err)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	messages, err := decodeMessages(data)
	if err != nil {
		log.Fatalf("failed to decode messages: %v", err)
	}

	r := render.NewRenderer(*width)
	for i, msg := range messages {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(r.RenderMessage(msg))
	}
}

func decodeMessages(data []byte) ([]models.Chat_Message, error) {
	var many []models.Chat_Message
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one models.Chat_Message
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []models.Chat_Message{one}, nil
}
