package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for terminal access. Tests replace these to avoid touching a
// real terminal.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
	readStdin   = func(buf []byte) (int, error) { return os.Stdin.Read(buf) }
)

// Sentinel results of the OTP prompt: the user asked to resend the code or
// to abandon the step.
var (
	ErrResendRequested = errors.New("resend requested")
	ErrOtpCancelled    = errors.New("otp entry cancelled")
)

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line is
// entered. The collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ReadOTP collects an OTP of exactly `length` digits. On a terminal it
// switches to raw mode and consumes keystrokes one by one: digits are echoed
// and accumulated, backspace erases, anything else is ignored, and the code
// is returned the instant the last digit arrives, with no submit key.
// Pressing 'r' with no digits entered returns ErrResendRequested; 'q' or
// Ctrl-C returns ErrOtpCancelled.
//
// When stdin is not a terminal the prompt falls back to line input via
// reader, accepting "r" and "q" the same way.
func ReadOTP(reader *bufio.Reader, w io.Writer, length int) (string, error) {
	fmt.Fprintf(w, "Enter the %d-digit code ('r' to resend, 'q' to cancel): ", length)

	fd := int(os.Stdin.Fd())
	oldState, err := makeRaw(fd)
	if err != nil {
		return readOTPLine(reader, w, length)
	}
	defer func() {
		_ = restoreTerm(fd, oldState)
		fmt.Fprintln(w)
	}()

	digits := make([]byte, 0, length)
	buf := make([]byte, 1)
	for {
		if _, err := readStdin(buf); err != nil {
			return "", err
		}
		c := buf[0]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
			fmt.Fprintf(w, "%c", c)
			if len(digits) == length {
				return string(digits), nil
			}
		case c == 0x7f || c == 0x08: // backspace
			if len(digits) > 0 {
				digits = digits[:len(digits)-1]
				fmt.Fprint(w, "\b \b")
			}
		case c == 'r' && len(digits) == 0:
			return "", ErrResendRequested
		case c == 'q' || c == 0x03: // Ctrl-C
			return "", ErrOtpCancelled
		}
	}
}

func readOTPLine(reader *bufio.Reader, w io.Writer, length int) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	line = strings.TrimSpace(line)
	switch line {
	case "r":
		return "", ErrResendRequested
	case "q":
		return "", ErrOtpCancelled
	}
	return line, nil
}
