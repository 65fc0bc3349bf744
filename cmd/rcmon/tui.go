package main

import (
	"fmt"
	"strings"
	"time"

	"ppmrx-go/drivers/ppm"
	"ppmrx-go/telemetry"
	"ppmrx-go/types"
	"ppmrx-go/x/mathx"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live channel bars",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var channelNames = []string{"Roll", "Pitch", "Yaw", "Thr", "Mode", "Aux1", "Aux2", "Aux3", "Aux4", "Aux5"}

const barWidth = 40

// TUI model
type model struct {
	portName string
	baudRate int

	frame     telemetry.Frame
	haveFrame bool
	lastSeen  time.Time

	// frame rate over the last tick
	rate       float64
	rateFrames uint32
	rateAt     time.Time

	textLog    []string
	maxLogRows int

	readErr  error
	width    int
	quitting bool
}

// Messages
type tickMsg time.Time
type frameMsg struct {
	frame telemetry.Frame
	at    time.Time
}
type textMsg string
type readErrMsg struct{ err error }

func initialModel(portName string, baudRate int) model {
	return model{
		portName:   portName,
		baudRate:   baudRate,
		maxLogRows: 6,
		width:      80,
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		now := time.Time(msg)
		if m.haveFrame && !m.rateAt.IsZero() {
			if dt := now.Sub(m.rateAt).Seconds(); dt > 0 {
				m.rate = float64(m.frame.Frames-m.rateFrames) / dt
			}
		}
		m.rateFrames = m.frame.Frames
		m.rateAt = now
		return m, tickCmd()

	case frameMsg:
		m.frame = msg.frame
		m.lastSeen = msg.at
		m.haveFrame = true

	case textMsg:
		m.textLog = append(m.textLog, string(msg))
		if len(m.textLog) > m.maxLogRows {
			m.textLog = m.textLog[len(m.textLog)-m.maxLogRows:]
		}

	case readErrMsg:
		m.readErr = msg.err
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true).
		Width(6)

	upStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	downStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("RCMON - PPM RECEIVER"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Port: %s @ %d baud | Press 'q' to quit", m.portName, m.baudRate)))
	s.WriteString("\n\n")

	if !m.haveFrame {
		s.WriteString(headerStyle.Render("Waiting for telemetry..."))
		s.WriteString("\n")
	} else {
		link := downStyle.Render("DOWN")
		if m.frame.Link == types.LinkUp {
			link = upStyle.Render("UP")
		}
		s.WriteString(fmt.Sprintf("Link: %s   Frames: %d   Rate: %.1f fr/s   Last: %s\n\n",
			link, m.frame.Frames, m.rate, m.lastSeen.Format("15:04:05.000")))

		var bars strings.Builder
		for i, v := range m.frame.Channels {
			bars.WriteString(labelStyle.Render(channelName(i)))
			bars.WriteString(barStyle.Render(renderBar(v, barWidth)))
			bars.WriteString(fmt.Sprintf(" %4d", v))
			if i < len(m.frame.Channels)-1 {
				bars.WriteString("\n")
			}
		}
		s.WriteString(boxStyle.Render(bars.String()))
		s.WriteString("\n")
	}

	if len(m.textLog) > 0 {
		s.WriteString("\n")
		s.WriteString(headerStyle.Render(strings.Join(m.textLog, "\n")))
		s.WriteString("\n")
	}
	if m.readErr != nil {
		s.WriteString(downStyle.Render(fmt.Sprintf("Read error: %v", m.readErr)))
		s.WriteString("\n")
	}
	return s.String()
}

func channelName(i int) string {
	if i >= 0 && i < len(channelNames) {
		return channelNames[i]
	}
	return fmt.Sprintf("Ch%d", i+1)
}

// renderBar draws v (µs) across PulseMin..PulseMax as width cells.
func renderBar(v uint16, width int) string {
	filled := int(mathx.MapU16(v, ppm.PulseMin, ppm.PulseMax, 0, uint16(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func runTUI(cmd *cobra.Command, args []string) error {
	conn, err := OpenSerialConnection(portName, baudRate)
	if err != nil {
		return err
	}
	defer conn.Close()

	p := tea.NewProgram(initialModel(portName, baudRate), tea.WithAltScreen())

	// Serial reader goroutine
	go func() {
		err := readLines(conn,
			func(f telemetry.Frame) { p.Send(frameMsg{frame: f, at: time.Now()}) },
			func(line string) { p.Send(textMsg(line)) },
		)
		if err != nil {
			p.Send(readErrMsg{err: err})
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
