package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/memocart/internal/core"
	"github.com/vovakirdan/memocart/internal/game"
	"github.com/vovakirdan/memocart/internal/storage"
	"github.com/vovakirdan/memocart/internal/worldgen"
)

// biomeLook is how a biome shows up in the terminal: rail color and the
// glyph scattered along the walls.
type biomeLook struct {
	color core.Color
	glyph rune
}

var biomeLooks = map[worldgen.BiomeType]biomeLook{
	worldgen.BiomeIntersection: {core.ColorWhite, '+'},
	worldgen.BiomeEmpty:        {core.ColorBrown, '.'},
	worldgen.BiomeDark:         {core.ColorDim, ' '},
	worldgen.BiomeWired:        {core.ColorYellow, '-'},
	worldgen.BiomeCoal:         {core.ColorGray, '#'},
	worldgen.BiomeGold:         {core.ColorYellow, '*'},
	worldgen.BiomePlant:        {core.ColorGreen, '"'},
	worldgen.BiomeDangerous:    {core.ColorRed, '!'},
	worldgen.BiomeSapphire:     {core.ColorBlue, '<'},
	worldgen.BiomeFire:         {core.ColorOrange, '^'},
	worldgen.BiomeUFO:          {core.ColorMagenta, 'o'},
	worldgen.BiomeVoid:         {core.ColorDim, ' '},
	worldgen.BiomeIce:          {core.ColorCyan, '~'},
	worldgen.BiomeFinish:       {core.ColorWhite, '='},
}

func lookOf(t worldgen.BiomeType) biomeLook {
	if l, ok := biomeLooks[t]; ok {
		return l
	}
	return biomeLook{core.ColorGray, '.'}
}

const (
	depthFalloff = 0.45
	railGauge    = 0.3
	wallGap      = 3
	substeps     = 6

	levelInfoSeconds = 3
	maxScoreLines    = 5
)

// viewport projects track space onto the screen. The cart sits at the
// origin looking down +z; far points shrink toward the horizon.
type viewport struct {
	w, h     int
	horizon  int
	lateral  float64
	vertical float64
}

func newViewport(w, h int) viewport {
	return viewport{
		w:        w,
		h:        h,
		horizon:  h / 4,
		lateral:  float64(w) / 4,
		vertical: float64(h) / 8,
	}
}

// project returns screen coordinates and the perspective factor of p.
func (v viewport) project(p core.Vec3) (x, y, f float64) {
	f = 1 / (1 + math.Max(p[2], 0)*depthFalloff)
	y = float64(v.horizon) + float64(v.h-3-v.horizon)*f - p[1]*v.vertical*f
	x = float64(v.w)/2 + p[0]*v.lateral*f
	return x, y, f
}

// sceneInput is everything a frame needs besides the state.
type sceneInput struct {
	Context string // subtitle of the home screen
	Scores  []storage.ScoreEntry
	Best    int // the player's best level on the map, 0 if none
}

// drawScene renders one frame of s into scr.
func drawScene(scr *core.Screen, s *game.State, in sceneInput) {
	scr.Clear()
	if s == nil || len(s.Track) == 0 || scr.Width() == 0 || scr.Height() == 0 {
		return
	}
	if s.UIState != nil && s.UIState.Black {
		return
	}

	v := newViewport(scr.Width(), scr.Height())
	ride, branch := paths(s)

	shift := origin(ride, s.TrackStepProgress)
	if branch != nil {
		drawRails(scr, v, branch, worldgen.TrackToCoordinates(branch, core.Vec3{}), shift, true, s.StepIndex)
	}
	drawRails(scr, v, ride, worldgen.TrackToCoordinates(ride, core.Vec3{}), shift, false, s.StepIndex)
	drawCart(scr, s)
	drawHUD(scr, s)
	drawOverlay(scr, s, in)
}

// paths returns the track the cart rides and the other branch of the
// junction in view, if any.
func paths(s *game.State) (ride, branch []worldgen.TrackSegment) {
	if s.AltTrackMode == game.CartOnAlt && len(s.AltTrack) == len(s.Track) {
		return s.AltTrack, s.Track
	}
	var mirrored []worldgen.TrackSegment
	for i, seg := range s.Track {
		ib, ok := seg.IntersectionBiome()
		if !ok || ib.LocalIndex < 0 || seg.Turn == 0 {
			continue
		}
		if mirrored == nil {
			mirrored = append([]worldgen.TrackSegment(nil), s.Track...)
		}
		mirrored[i].Turn = -seg.Turn
	}
	return s.Track, mirrored
}

// origin is the cart position along the first segment.
func origin(track []worldgen.TrackSegment, progress float64) core.Vec3 {
	if len(track) == 0 {
		return core.Vec3{}
	}
	return worldgen.SegmentDelta(track[0]).Scale(progress)
}

func railRune(turn float64) rune {
	switch {
	case turn < -0.15:
		return '\\'
	case turn > 0.15:
		return '/'
	}
	return '|'
}

// drawRails draws far segments first so near ones overwrite them.
func drawRails(scr *core.Screen, v viewport, segs []worldgen.TrackSegment, coords []core.Vec3, shift core.Vec3, dim bool, stepIndex int) {
	for k := len(segs) - 1; k >= 0; k-- {
		seg := segs[k]
		look := lookOf(seg.DominantBiome().Type)
		color, rail := look.color, railRune(seg.Turn)
		if dim {
			color, rail = core.ColorDim, ':'
		}
		a := coords[k].Sub(shift)
		b := coords[k+1].Sub(shift)

		for i := range substeps {
			t := float64(i) / substeps
			p := a.Add(b.Sub(a).Scale(t))
			if p[2] < 0 {
				continue
			}
			x, y, f := v.project(p)
			half := math.Max(1, railGauge*v.lateral*f)
			row := int(math.Round(y))
			left := int(math.Round(x - half))
			right := int(math.Round(x + half))

			if i == 0 && !dim {
				scr.DrawHLine(left+1, row, right-left-1, '=', core.ColorBrown)
			}
			scr.Set(left, row, rail, color)
			scr.Set(right, row, rail, color)

			if !dim && look.glyph != ' ' && (row+stepIndex+k)%3 == 0 {
				scr.Set(left-wallGap, row, look.glyph, look.color)
				scr.Set(right+wallGap, row, look.glyph, look.color)
			}
		}
	}
}

func drawCart(scr *core.Screen, s *game.State) {
	y := scr.Height() - 2
	x := scr.Width()/2 - 2
	switch s.Status {
	case game.StatusGameOver:
		scr.DrawText(x, y, "[XX]", core.ColorRed)
	default:
		scr.DrawText(x, y, "[##]", core.ColorYellow)
	}

	arrow := ">>"
	if s.SwitchDirection < 0 {
		arrow = "<<"
	}
	scr.DrawText(scr.Width()/2-1, y-1, arrow, core.ColorWhite)
}

func drawHUD(scr *core.Screen, s *game.State) {
	if s.IsDemo() {
		return
	}
	area := s.Area()
	if s.UIState != nil && s.UIState.Area != "" {
		area = s.UIState.Area
	}
	scr.DrawText(1, 0, area, core.ColorWhite)

	speed := fmt.Sprintf("%4.1f m/s", s.Speed)
	if s.Braking > 0.1 {
		speed = "BRAKE " + speed
	}
	scr.DrawText(scr.Width()-len(speed)-1, 0, speed, core.ColorGray)

	if s.UIState != nil && s.UIState.Failures > 0 {
		fails := strings.Repeat("x", min(s.UIState.Failures, 10))
		scr.DrawText(1, 1, fails, core.ColorRed)
	}

	depth := depthGauge(s)
	scr.DrawText(scr.Width()-len(depth)-1, 1, depth, core.ColorDim)

	if s.Level > 0 && (s.Time-s.StartTime < levelInfoSeconds || (s.UIState != nil && s.UIState.LevelInfoActive)) {
		scr.DrawTextCentered(2, fmt.Sprintf("LEVEL %d", s.Level), core.ColorYellow)
	}
}

// depthGauge counts biomes passed since the top of the level's run.
func depthGauge(s *game.State) string {
	biome := worldgen.BiomeIndexForTrack(max(s.StepIndex, 0))
	total := worldgen.LevelStepBiomeIndex(s.Level)
	return fmt.Sprintf("DEPTH %d/%d", worldgen.ReverseBiomeIndex(s.Level, biome), total)
}

func drawOverlay(scr *core.Screen, s *game.State, in sceneInput) {
	ui := s.UIState
	if ui == nil {
		return
	}
	h := scr.Height()

	title := ui.Title
	if ui.UseContextTitle {
		title = "MEMOCART"
	}
	var lines []string
	if title != "" {
		lines = append(lines, title)
	}
	if ui.UseContextTitle && in.Context != "" {
		lines = append(lines, in.Context)
	}
	if ui.Body != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(ui.Body, "\n")...)
	}
	if ui.ShowHighscores && len(in.Scores) > 0 {
		lines = append(lines, "", "HIGHSCORES")
		for i, e := range in.Scores {
			if i >= maxScoreLines {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %-8s L%d", i+1, e.Username, e.Level))
		}
	}
	if ui.ShowHighscores && in.Best > 0 {
		lines = append(lines, "", fmt.Sprintf("YOUR BEST L%d", in.Best))
	}

	top := h / 5
	if ui.TitleCentered {
		top = (h - len(lines)) / 2
	}
	if len(lines) > 0 {
		width := 0
		for _, l := range lines {
			width = max(width, len(l))
		}
		scr.FillRect((scr.Width()-width)/2-1, top, width+2, len(lines))
		for i, l := range lines {
			color := core.ColorWhite
			if i == 0 && title != "" {
				color = core.ColorYellow
			}
			scr.DrawTextCentered(top+i, l, color)
		}
	}

	if ui.Footer != "" && (!ui.FooterBlink || s.UIBlink) {
		y := h - 4
		if ui.FooterCentered {
			scr.FillRect((scr.Width()-len(ui.Footer))/2-1, y, len(ui.Footer)+2, 1)
			scr.DrawTextCentered(y, ui.Footer, core.ColorWhite)
		} else {
			scr.FillRect(0, y, len(ui.Footer)+2, 1)
			scr.DrawText(1, y, ui.Footer, core.ColorWhite)
		}
	}
}
