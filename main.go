package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/illusionman1212/gifsauce/gif"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
)

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

func readDocument(path string) (*gif.Document, gif.Outcome, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, gif.OutcomeTruncated, err
	}
	defer file.Close()

	return gif.Parse(bufio.NewReader(file), gif.DefaultOptions())
}

func writeDocument(path string, doc *gif.Document) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.Encode(file, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func printSummary(doc *gif.Document, outcome gif.Outcome) {
	fmt.Printf("GIF version is: %v\n", cyan(string(doc.Header.Version[:])))
	fmt.Printf("GIF width is: %v\n", doc.Screen.Width)
	fmt.Printf("GIF height is: %v\n", doc.Screen.Height)
	fmt.Printf("Global color table entries: %v\n", len(doc.GlobalColorTable))
	fmt.Printf("Image blocks: %v\n", len(doc.Images))
	fmt.Printf("Plain text extensions: %v\n", len(doc.PlainTexts))
	if outcome == gif.OutcomeTruncated {
		fmt.Print(yellow("WARNING: input ended before the trailer, keeping what was read\n"))
	}
	fmt.Print("\n")
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.gif> <output.gif>\n", os.Args[0])
		os.Exit(1)
	}
	inputFile, outputFile := os.Args[1], os.Args[2]

	doc, outcome, err := readDocument(inputFile)
	if err != nil {
		fatal("reading %s: %v", inputFile, err)
	}

	// stdout carries the payload in extract mode
	if doc.HasPlainText() {
		fmt.Fprintf(os.Stderr, "Found %v plain text extension(s), extracting\n", len(doc.PlainTexts))
		os.Stdout.Write(doc.PlainTextData())
		return
	}

	printSummary(doc, outcome)

	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("reading payload from stdin: %v", err)
	}
	fmt.Printf("Read %v payload bytes, %v chunk(s) of %v\n", len(payload), chunkCount(len(payload), CHUNK_SIZE), CHUNK_SIZE)

	if err := Embed(doc, payload, CHUNK_SIZE); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Image blocks after embedding: %v\n", len(doc.Images))

	if err := writeDocument(outputFile, doc); err != nil {
		fatal("writing %s: %v", outputFile, err)
	}
	fmt.Printf("GIF reassembled and saved to %s\n", cyan(outputFile))
}
