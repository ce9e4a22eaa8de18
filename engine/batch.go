package engine

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/BrenanL/hotmic/encoder"
)

type transcribeFunc func(audio []byte, cfg SessionConfig) (*Result, error)

// batchSession encodes PCM to FLAC concurrently with capture and
// uploads the whole file on Close.
type batchSession struct {
	cfg        SessionConfig
	transcribe transcribeFunc
	enc        *encoder.FlacEncoder
	updates    chan string
	blockChan  chan []int16
	encodeDone chan struct{}

	bufMu     sync.Mutex
	sampleBuf []int16
}

func newBatchSession(cfg SessionConfig, transcribe transcribeFunc) (*batchSession, error) {
	enc, err := encoder.NewFlac()
	if err != nil {
		return nil, err
	}

	bs := &batchSession{
		cfg:        cfg,
		transcribe: transcribe,
		enc:        enc,
		updates:    make(chan string),
		blockChan:  make(chan []int16, 64),
		encodeDone: make(chan struct{}),
	}

	go func() {
		defer close(bs.encodeDone)
		for block := range bs.blockChan {
			bs.enc.EncodeBlock(block)
		}
	}()

	return bs, nil
}

func (bs *batchSession) Feed(pcm []byte) {
	bs.bufMu.Lock()
	for i := 0; i+1 < len(pcm); i += 2 {
		bs.sampleBuf = append(bs.sampleBuf, int16(binary.LittleEndian.Uint16(pcm[i:])))
	}
	var blocks [][]int16
	for len(bs.sampleBuf) >= encoder.BlockSize {
		block := make([]int16, encoder.BlockSize)
		copy(block, bs.sampleBuf[:encoder.BlockSize])
		bs.sampleBuf = bs.sampleBuf[encoder.BlockSize:]
		blocks = append(blocks, block)
	}
	bs.bufMu.Unlock()

	for _, block := range blocks {
		bs.blockChan <- block
	}
}

func (bs *batchSession) Updates() <-chan string {
	return bs.updates
}

func (bs *batchSession) Close() (Result, error) {
	bs.bufMu.Lock()
	if len(bs.sampleBuf) > 0 {
		partial := make([]int16, len(bs.sampleBuf))
		copy(partial, bs.sampleBuf)
		bs.blockChan <- partial
		bs.sampleBuf = nil
	}
	bs.bufMu.Unlock()

	close(bs.blockChan)
	<-bs.encodeDone
	close(bs.updates)

	if err := bs.enc.Close(); err != nil {
		return Result{}, err
	}

	audioData := bs.enc.Bytes()
	result, err := bs.transcribe(audioData, bs.cfg)
	if err != nil {
		return Result{}, err
	}

	result.Text = strings.TrimSpace(result.Text)

	rawSize := bs.enc.TotalFrames() * 2
	stats := &BatchStats{
		AudioLengthS:     encoder.Duration(bs.enc.TotalFrames()),
		RawSizeKB:        float64(rawSize) / 1024,
		CompressedSizeKB: float64(len(audioData)) / 1024,
		EncodeTimeMs:     float64(bs.enc.EncodeTime().Milliseconds()),
	}
	if result.Metrics != nil {
		stats.TotalTimeMs = float64(result.Metrics.Sum().Milliseconds())
		stats.ConnReused = result.Metrics.ConnReused
	}
	result.Batch = stats
	return *result, nil
}
