package grayview

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"grayview/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// imgFile holds the file being accessed, be it normal file or pipe name.
	imgFile *os.File

	// Common file related variable
	fs os.FileInfo
)

// Ops bundles the driver options collected from the command line.
type Ops struct {
	// Src is the positional source: an image file, a directory, a URL or a pipe.
	Src string
	// Dst receives the comparison sheet, or the converted images in batch mode.
	Dst string
	// Diff receives the difference image of the two grayscale routes.
	Diff string
	// PipeName is the marker standing in for stdin/stdout.
	PipeName string
	// Workers caps the concurrently processed files in batch mode.
	Workers int
}

// result holds the relevant information about a converted image.
type result struct {
	path string
	err  error
}

// Execute runs the grayscale comparison. A single image is converted through
// both routes and shown in the preview window; a directory is converted
// concurrently without a GUI.
func (p *Processor) Execute(op *Ops) {
	var err error
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("◧ GRAYVIEW", utils.StatusMessage),
		utils.DecorateText("⇢ converting the image...", utils.DefaultMessage),
	)
	p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer os.Remove(src.Name())
		}

		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		img, err := os.Open(src.Name())
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to open the temporary image file: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}

		imgFile = img
	} else {
		// Check if the source is a pipe name or a regular file.
		if op.Src == op.PipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(op.Src)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Batch mode writes the converted files into the destination directory.
		if op.Dst == "" {
			log.Fatalf(utils.DecorateText("please provide an output directory with -out\n", utils.ErrorMessage))
		}
		_, err := os.Stat(op.Dst)
		if err != nil {
			err = os.Mkdir(op.Dst, 0755)
			if err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}
		p.Preview = false

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, validExtensions)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			if res.err != nil {
				err = res.err
			}
			op.printOpStatus(res.path, err)
		}

		if err = <-errc; err != nil {
			fmt.Fprintf(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		if op.Dst != "" && op.Dst != op.PipeName {
			ext := filepath.Ext(op.Dst)
			if !isValidExtension(ext, validExtensions) {
				log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
			}
		}

		res, err := op.compare(p)
		op.printOpStatus(op.Src, err)

		if p.Preview {
			if err := NewGUI(res).Run(); err != nil {
				log.Fatalf(
					utils.DecorateText("Error showing the comparison window: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// compare converts the single source image through both grayscale routes,
// writing the comparison sheet and the difference image when requested.
func (op *Ops) compare(p *Processor) (*Comparison, error) {
	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("◧ GRAYVIEW", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been converted ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("◧ GRAYVIEW", utils.StatusMessage),
		utils.DecorateText("converting the image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	// Capture CTRL-C signal and restore back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		p.Spinner.RestoreCursor()
		os.Exit(1)
	}()

	// Start the progress indicator.
	p.Spinner.Start()

	img, err := op.sourceImage()
	if err != nil {
		p.Spinner.StopMsg = errorMsg
		p.Spinner.Stop()
		return nil, err
	}
	res := p.Convert(img)

	if op.Dst != "" {
		if err := op.writeImage(op.Dst, res.Sheet()); err != nil {
			p.Spinner.StopMsg = errorMsg
			p.Spinner.Stop()
			return nil, err
		}
	}
	if op.Diff != "" {
		if err := op.writeImage(op.Diff, res.Diff()); err != nil {
			p.Spinner.StopMsg = errorMsg
			p.Spinner.Stop()
			return nil, err
		}
	}

	p.Spinner.StopMsg = successMsg
	p.Spinner.Stop()

	return res, nil
}

// consumer reads the path names from the paths channel and runs the grayscale conversion against each image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process converts a single file of the batch and writes the grayscale result.
func (op *Ops) process(p *Processor, in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("unable to open the source file: %v", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %v", err)
	}
	defer func() {
		if err := dst.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	if err := p.Process(src, dst); err != nil {
		// remove the generated image file in case of an error
		os.Remove(dst.Name())
		return err
	}
	return nil
}

// sourceImage decodes the single source image, wherever it comes from.
// The temporary file of a URL source is closed here, exactly once; the
// decoded pixels are already copied out by the time it is removed.
func (op *Ops) sourceImage() (image.Image, error) {
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		defer func() {
			if err := imgFile.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}()
		img, _, err := image.Decode(imgFile)
		if err != nil {
			return nil, fmt.Errorf("could not decode the source image: %v", err)
		}
		return img, nil
	}

	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		img, _, err := image.Decode(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("could not decode the source image: %v", err)
		}
		return img, nil
	}

	return decodeImg(op.Src)
}

// writeImage encodes img into the named file, stdout when the pipe name is used.
func (op *Ops) writeImage(out string, img image.Image) error {
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return encodeImg(os.Stdout, img)
	}

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %v", err)
	}
	defer func() {
		if err := dst.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	return encodeImg(dst, img)
}

// printOpStatus displays the relevant information about the conversion process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError converting the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nConverted: %s %s\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			isFileSupported := false
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			// Get the file base name.
			fx := filepath.Ext(f.Name())
			for _, ext := range srcExts {
				if ext == fx {
					isFileSupported = true
					break
				}
			}

			if isFileSupported {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
