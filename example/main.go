// example/main.go
package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"

	"github.com/davidkohl/gobelix/asterix"
	"github.com/davidkohl/gobelix/cat/cat021"
	"github.com/davidkohl/gobelix/framer"
	"github.com/davidkohl/gobelix/sink"
)

func main() {
	dec := asterix.NewDecoder()
	if err := cat021.Register(dec); err != nil {
		fmt.Printf("Failed to register CAT021: %v\n", err)
		return
	}

	conn, err := net.Dial("tcp", "davidkohl.de:21000")
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		return
	}
	defer conn.Close()

	out := sink.NewJSON(os.Stdout, 0)
	defer out.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		conn.Close()
	}()

	f := framer.NewRaw(conn)
	for {
		_, payload, meta, err := f.Next()
		if err != nil {
			if err == io.EOF {
				fmt.Println("Connection closed")
				return
			}
			fmt.Printf("Failed to frame data block: %v\n", err)
			return
		}

		meta.Apply(dec.Context())
		reports, err := dec.Decode(payload)
		if err != nil {
			fmt.Printf("Failed to decode data block: %v\n", err)
		}

		for _, r := range reports {
			if err := out.Accept(r); err != nil {
				fmt.Printf("Failed to write report: %v\n", err)
			}
		}
	}
}
