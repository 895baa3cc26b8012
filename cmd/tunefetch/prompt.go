package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/tunefetch/internal/model"
)

// prompter reads answers line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints label and returns the trimmed answer. io.EOF is returned
// only when the input is exhausted with nothing typed.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) askInt(label string) (int, error) {
	answer, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// readQuery asks for the four query fields.
func (p *prompter) readQuery() (model.SearchQuery, error) {
	var answers [4]string
	labels := [4]string{
		"Enter the song name: ",
		"Enter the artist name: ",
		"Enter the album name (or press Enter to skip): ",
		"Enter the genre (or press Enter to skip): ",
	}
	for i, label := range labels {
		answer, err := p.ask(label)
		if err != nil {
			return model.SearchQuery{}, err
		}
		answers[i] = answer
	}
	return model.NewSearchQuery(answers[0], answers[1], answers[2], answers[3]), nil
}

// again asks whether to run another request. Only "yes" continues.
func (p *prompter) again() bool {
	answer, err := p.ask("\nDo you want to download another song? (yes/no): ")
	return err == nil && strings.ToLower(answer) == "yes"
}

// SelectCover lists the candidates with a skip entry and reads a number.
func (p *prompter) SelectCover(_ context.Context, candidates []model.ImageCandidate) (int, error) {
	fmt.Fprintln(p.out, "\nChoose an album cover:")
	for i, c := range candidates {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, c.URL)
	}
	fmt.Fprintln(p.out, "0. Skip album cover")
	return p.askInt("Enter the number of the cover to use (or 0 to skip): ")
}

// SelectVideo lists the candidates and reads a number, 0 to exit.
func (p *prompter) SelectVideo(_ context.Context, candidates []model.VideoCandidate) (int, error) {
	fmt.Fprintln(p.out, "\nFound the following results:")
	for i, v := range candidates {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, v.String())
	}
	return p.askInt("Enter the number of the correct video (or 0 to exit): ")
}
