package cli

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/shatter/pkg/effect/shatter"
	"github.com/matzehuels/shatter/pkg/pipeline"
	"github.com/matzehuels/shatter/pkg/preview"
)

// Preview styles
var (
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewBarStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	// maxPreviewCells caps the preview width in terminal columns.
	maxPreviewCells = 64
	// progressBarWidth is the width of the frame position bar.
	progressBarWidth = 32
)

// backdrop is the color transparent pixels are shown over.
var backdrop = [3]uint8{0x1c, 0x1c, 0x1c}

type shatterPlayer = preview.Player[shatter.Options, *shatter.Context]

// =============================================================================
// PreviewModel - Interactive animation preview
// =============================================================================

// previewTickMsg drives playback. gen identifies the player the tick was
// scheduled for; ticks for a replaced player are dropped.
type previewTickMsg struct {
	gen int
	at  time.Time
}

// previewExportMsg reports the end of an export started from the preview.
type previewExportMsg struct {
	path   string
	result *pipeline.Result
	err    error
}

// playerFactory builds a player for the given seed.
type playerFactory func(seed uint64) (*shatterPlayer, error)

// exportFunc exports the previewed animation with the given seed and
// returns the written path.
type exportFunc func(seed uint64) (string, *pipeline.Result, error)

// PreviewModel is the bubbletea model for the interactive preview.
type PreviewModel struct {
	player   *shatterPlayer
	build    playerFactory
	export   exportFunc
	interval time.Duration
	gen      int
	cells    int

	exporting bool
	status    string
	Saved     []string
}

// NewPreviewModel creates a preview model around a playing player.
func NewPreviewModel(p *shatterPlayer, fps int, build playerFactory, export exportFunc) PreviewModel {
	return PreviewModel{
		player:   p,
		build:    build,
		export:   export,
		interval: time.Second / time.Duration(fps),
		cells:    maxPreviewCells,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return m.tick()
}

func (m PreviewModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return previewTickMsg{gen: gen, at: t}
	})
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.player.Tick(msg.at)
		return m, m.tick()

	case previewExportMsg:
		m.exporting = false
		if msg.err != nil {
			m.status = StyleWarning.Render("Export failed: " + msg.err.Error())
			return m, nil
		}
		m.Saved = append(m.Saved, msg.path)
		m.status = StyleSuccess.Render(fmt.Sprintf("Saved %s (%s)", msg.path, formatBytes(len(msg.result.Data))))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.player.Toggle()
		case "left", "h":
			m.player.Seek(m.player.Frame() - 1)
		case "right", "l":
			m.player.Seek(m.player.Frame() + 1)
		case "home", "0":
			m.player.Seek(0)
		case "end":
			m.player.Seek(m.player.Total() - 1)
		case "r":
			p, err := m.build(shatter.NewSeed())
			if err != nil {
				m.status = StyleWarning.Render(err.Error())
				return m, nil
			}
			m.player = p
			m.gen++
			m.status = ""
			return m, m.tick()
		case "e":
			if m.exporting {
				return m, nil
			}
			m.exporting = true
			m.status = previewStatusStyle.Render("Exporting...")
			seed, export := m.Seed(), m.export
			return m, func() tea.Msg {
				path, res, err := export(seed)
				return previewExportMsg{path: path, result: res, err: err}
			}
		}

	case tea.WindowSizeMsg:
		m.cells = max(8, min(maxPreviewCells, msg.Width-2))
	}
	return m, nil
}

// Seed is the seed of the animation on screen.
func (m PreviewModel) Seed() uint64 {
	return m.player.Context().Seed
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shatter Preview"))
	b.WriteString("\n\n")
	b.WriteString(renderHalfBlocks(m.player.Image(), m.cells))
	b.WriteString("\n")

	state := "❚❚ paused "
	if m.player.Playing() {
		state = "▶ playing"
	}
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf("%s  %s  %3d/%d  seed %d",
		state, progressBar(m.player.Progress(), progressBarWidth), m.player.Frame()+1, m.player.Total(), m.Seed())))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("space play/pause  ←/→ step  r reshuffle  e export  q quit"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// progressBar renders percent (0-100) as a bar of width cells.
func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	return previewBarStyle.Render(strings.Repeat("━", filled)) + previewHelpStyle.Render(strings.Repeat("─", width-filled))
}

// renderHalfBlocks draws img with one "▀" per terminal cell, the upper
// half colored by one pixel row and the lower half by the next. The image
// is sampled so it is at most maxCells columns wide.
func renderHalfBlocks(img *image.RGBA, maxCells int) string {
	b := img.Bounds()
	step := max(1, (b.Dx()+maxCells-1)/maxCells)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 * step {
		for x := b.Min.X; x < b.Max.X; x += step {
			top := cellColor(img, x, y)
			bottom := cellColor(img, x, y+step)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// cellColor returns the hex color of the pixel at (x, y) composited over
// the backdrop. Points outside the image are backdrop.
func cellColor(img *image.RGBA, x, y int) string {
	r, g, b := backdrop[0], backdrop[1], backdrop[2]
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		px := img.Pix[img.PixOffset(x, y):]
		// Pixels are premultiplied, so src-over is c + bg*(1-a).
		inv := 255 - uint32(px[3])
		r = uint8(uint32(px[0]) + uint32(r)*inv/255)
		g = uint8(uint32(px[1]) + uint32(g)*inv/255)
		b = uint8(uint32(px[2]) + uint32(b)*inv/255)
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}
