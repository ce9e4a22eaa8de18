//go:build gui

package gui

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	dotDiameter = 18
	padSize     = 8
	refreshRate = 50 * time.Millisecond
)

var (
	colorIdle       = color.RGBA{0x55, 0x55, 0x55, 0xff}
	colorRecording  = color.RGBA{0xff, 0x44, 0x44, 0xff}
	colorProcessing = color.RGBA{0xff, 0xaa, 0x00, 0xff}
)

// DotWidget is a small pulsing indicator: gray when idle, red while
// recording, amber while a transcript is in flight.
type DotWidget struct {
	widget.BaseWidget

	mu         sync.Mutex
	state      int // 0 idle, 1 recording, 2 processing
	started    time.Time
	circle     *canvas.Circle
	label      *canvas.Text
	animStop   chan struct{}
	animActive bool
}

func NewDotWidget() *DotWidget {
	d := &DotWidget{}
	d.ExtendBaseWidget(d)
	return d
}

func (d *DotWidget) SetIdle() { d.setState(0) }

func (d *DotWidget) SetRecording() {
	d.mu.Lock()
	d.started = time.Now()
	d.mu.Unlock()
	d.setState(1)
}

func (d *DotWidget) SetProcessing() { d.setState(2) }

func (d *DotWidget) setState(s int) {
	d.mu.Lock()
	d.state = s
	circle := d.circle
	d.mu.Unlock()
	if circle != nil {
		fyne.Do(func() { d.Refresh() })
	}
}

func (d *DotWidget) CreateRenderer() fyne.WidgetRenderer {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.circle = &canvas.Circle{FillColor: colorIdle}
	d.label = canvas.NewText("", color.RGBA{0xc8, 0xc8, 0xc8, 0xff})
	d.label.TextSize = 11

	if !d.animActive {
		d.animActive = true
		d.animStop = make(chan struct{})
		go d.animate(d.animStop)
	}

	return &dotRenderer{d: d}
}

// animate pulses the dot while recording so a glance confirms the mic
// is hot.
func (d *DotWidget) animate(stop chan struct{}) {
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		d.mu.Lock()
		state := d.state
		elapsed := time.Since(d.started)
		circle := d.circle
		label := d.label
		d.mu.Unlock()
		if circle == nil {
			continue
		}

		fyne.Do(func() {
			switch state {
			case 1:
				pulse := 0.6 + 0.4*math.Abs(math.Sin(elapsed.Seconds()*3))
				c := colorRecording
				c.A = uint8(255 * pulse)
				circle.FillColor = c
				label.Text = formatElapsed(elapsed)
			case 2:
				circle.FillColor = colorProcessing
				label.Text = "..."
			default:
				circle.FillColor = colorIdle
				label.Text = ""
			}
			canvas.Refresh(circle)
			canvas.Refresh(label)
		})
	}
}

func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return itoa(secs) + "s"
	}
	return itoa(secs/60) + "m" + itoa(secs%60) + "s"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

type dotRenderer struct {
	d *DotWidget
}

func (r *dotRenderer) MinSize() fyne.Size {
	return fyne.NewSize(dotDiameter+2*padSize+36, dotDiameter+2*padSize)
}

func (r *dotRenderer) Layout(size fyne.Size) {
	r.d.circle.Resize(fyne.NewSize(dotDiameter, dotDiameter))
	r.d.circle.Move(fyne.NewPos(padSize, (size.Height-dotDiameter)/2))
	r.d.label.Move(fyne.NewPos(padSize+dotDiameter+6, (size.Height-14)/2))
}

func (r *dotRenderer) Refresh() {
	canvas.Refresh(r.d.circle)
	canvas.Refresh(r.d.label)
}

func (r *dotRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.d.circle, r.d.label}
}

func (r *dotRenderer) Destroy() {
	r.d.mu.Lock()
	if r.d.animActive {
		close(r.d.animStop)
		r.d.animActive = false
	}
	r.d.mu.Unlock()
}
