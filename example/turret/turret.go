/*
Example code showing how to run the turret aiming pipeline on a video file
or camera, sending the aim solution over a serial link
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/swdee/go-rmcv"
	"github.com/swdee/go-rmcv/config"
	"github.com/swdee/go-rmcv/link"
	"github.com/swdee/go-rmcv/logging"
	"github.com/swdee/go-rmcv/objdetect"
	"github.com/swdee/go-rmcv/preprocess"
	"github.com/swdee/go-rmcv/render"
	"github.com/swdee/go-rmcv/solver"
	"gocv.io/x/gocv"
)

// Turret holds the stages of the aiming pipeline
type Turret struct {
	cfg      *config.Config
	log      zerolog.Logger
	camp     rmcv.CampType
	mode     rmcv.AimMode
	comp     rmcv.CompensateMode
	queue    *rmcv.ParallelQueue[*rmcv.Package]
	seq      rmcv.Sequence
	detector *objdetect.Detector
	link     *link.Link
	writer   *gocv.VideoWriter
	font     render.Font
}

// NewTurret returns a Turret configured from cfg
func NewTurret(cfg *config.Config, log zerolog.Logger) (*Turret, error) {

	t := &Turret{
		cfg:      cfg,
		log:      log,
		queue:    rmcv.NewParallelQueue[*rmcv.Package](),
		detector: objdetect.NewDetector(cfg.LightBar, cfg.Armour),
		font:     render.DefaultFont(),
	}

	var err error

	if t.camp, err = cfg.OwnCamp(); err != nil {
		return nil, err
	}

	if t.mode, err = cfg.Mode(); err != nil {
		return nil, err
	}

	if t.comp, err = cfg.CompensateMode(); err != nil {
		return nil, err
	}

	if cfg.Serial.Enabled {
		t.link, err = link.Open(cfg.Serial.Port, cfg.Serial.BaudRate)

		if err != nil {
			return nil, err
		}

		log.Info().Str("port", cfg.Serial.Port).
			Int("baud", cfg.Serial.BaudRate).Msg("Opened serial link")
	}

	return t, nil
}

// Close releases the serial link and video writer
func (t *Turret) Close() error {
	var errs []error

	if t.link != nil {
		errs = append(errs, t.link.Close())
	}

	if t.writer != nil {
		errs = append(errs, t.writer.Close())
	}

	return errors.Join(errs...)
}

// openSource opens a camera when source is a device number, otherwise a
// video file
func openSource(source string) (*gocv.VideoCapture, error) {
	var (
		vcap *gocv.VideoCapture
		err  error
	)

	if dev, convErr := strconv.Atoi(source); convErr == nil {
		vcap, err = gocv.VideoCaptureDevice(dev)
	} else {
		vcap, err = gocv.VideoCaptureFile(source)
	}

	// gocv allocates the capture even when opening fails
	if err != nil && vcap != nil {
		vcap.Close()
		return nil, err
	}

	return vcap, err
}

// acquire reads frames from the capture, binarizes them and pushes them onto
// the queue until the source ends or stop is closed.  A nil Package marks
// the end of the stream.
func (t *Turret) acquire(vcap *gocv.VideoCapture, stop <-chan struct{}) {

	defer t.queue.Push(nil)

	binarizer := preprocess.NewBinarizer(t.cfg.Threshold)
	defer binarizer.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	binary := gocv.NewMat()
	defer binary.Close()

	enemy := t.camp.Opponent()

	for {
		select {
		case <-stop:
			return
		default:
		}

		if ok := vcap.Read(&frame); !ok || frame.Empty() {
			t.log.Info().Msg("End of video source")
			return
		}

		// drop the oldest frame when processing falls behind
		if t.cfg.QueueSize > 0 && t.queue.Len() >= t.cfg.QueueSize {
			if old, ok := t.queue.TryPop(); ok && old != nil {
				t.log.Debug().Int64("seq", old.Seq).Msg("Dropped frame")
				old.Close()
			}
		}

		binarizer.Binarize(frame, enemy, &binary)

		t.queue.Push(t.seq.Stamp(
			rmcv.NewPackage(t.camp, t.mode, t.cfg.Speed, 0, frame, binary)))
	}
}

// process pops packages off the queue, detects armour and solves the aim
// for the best ranked target
func (t *Turret) process() {

	for {
		pkg := t.queue.Pop()

		if pkg == nil {
			return
		}

		t.handle(pkg)
		pkg.Close()
	}
}

// handle runs detection and aim solving on a single package
func (t *Turret) handle(pkg *rmcv.Package) {

	start := time.Now()

	lightBars := t.detector.Detect(pkg)

	logger := t.log.With().Int64("seq", pkg.Seq).
		Int("lightbars", len(lightBars)).
		Int("armours", len(pkg.Armours)).Logger()

	var sf rmcv.ShootFactor
	solved := false

	if len(pkg.Armours) > 0 {
		target := pkg.Armours[0]

		tvec, err := t.cfg.Camera.EstimateTranslation(target, t.cfg.PlateHeight)

		if err == nil {
			sf, err = solver.SolveShootFactor(tvec, t.cfg.Ballistic, gocv.Point2f{}, t.comp)
		}

		if err != nil {
			logger.Warn().Err(err).Msg("Could not solve aim")
		} else {
			solved = true
			logger.Debug().Float64("distance", tvec.Z).
				Float32("pitch", sf.PitchAngle).
				Float32("yaw", sf.YawAngle).
				Float64("airTime", sf.EstimateAirTime).Msg("Aim solved")
		}
	}

	if solved && t.link != nil {
		if err := t.link.Send(sf); err != nil {
			logger.Error().Err(err).Msg("Error sending aim")
		}
	}

	if t.writer != nil {
		render.LightBars(&pkg.Frame, lightBars, 1)
		render.Armours(&pkg.Frame, pkg.Armours, t.font, 2)

		if solved {
			render.ShootFactor(&pkg.Frame, sf, t.font)
		}

		if err := t.writer.Write(pkg.Frame); err != nil {
			logger.Error().Err(err).Msg("Error writing frame")
		}
	}

	logger.Trace().Dur("elapsed", time.Since(start)).Msg("Processed frame")
}

func main() {
	configFile := flag.String("c", "", "Configuration file, defaults are used when empty")
	source := flag.String("v", "", "Video file or camera device number, overrides the configured source")
	outFile := flag.String("o", "", "Write annotated video to this file")

	flag.Parse()

	cfg, err := config.Load(*configFile)

	if err != nil {
		bootLog := logging.New("info", true)
		bootLog.Fatal().Err(err).Msg("Error loading config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	if *source != "" {
		cfg.Source = *source
	}

	// run owns every resource so its deferred closes complete before exit
	if err := run(cfg, log, *outFile); err != nil {
		log.Fatal().Err(err).Msg("Turret stopped")
	}
}

// run opens the serial link, video source and optional video writer then
// drives the pipeline until the source ends or the process is signalled
func run(cfg *config.Config, log zerolog.Logger, outFile string) error {

	turret, err := NewTurret(cfg, log)

	if err != nil {
		return fmt.Errorf("error creating turret: %w", err)
	}

	defer turret.Close()

	vcap, err := openSource(cfg.Source)

	if err != nil {
		return fmt.Errorf("error opening video source %q: %w", cfg.Source, err)
	}

	defer vcap.Close()

	if outFile != "" {
		fps := vcap.Get(gocv.VideoCaptureFPS)
		if fps <= 0 {
			fps = 30
		}

		turret.writer, err = gocv.VideoWriterFile(outFile, "mp4v", fps,
			int(vcap.Get(gocv.VideoCaptureFrameWidth)),
			int(vcap.Get(gocv.VideoCaptureFrameHeight)), true)

		if err != nil {
			return fmt.Errorf("error creating video writer %q: %w", outFile, err)
		}
	}

	log.Info().Str("camp", turret.camp.String()).
		Str("mode", turret.mode.String()).
		Str("compensate", turret.comp.String()).
		Str("source", cfg.Source).Msg("Starting turret")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		turret.acquire(vcap, ctx.Done())
	}()

	go func() {
		defer wg.Done()
		turret.process()
	}()

	wg.Wait()

	if ctx.Err() != nil {
		log.Info().Msg("Shutting down")
	}

	return nil
}
