package board

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"MyWhiteboard/internal/scene"
)

const imageScale = 0.5

// InsertImage decodes r and, once the bitmap is ready, inserts it at
// (50,50) at half size. With a Dispatch set, decoding runs in the background
// and insertion is handed back through Dispatch; without one both happen
// before InsertImage returns. If the board is unmounted before decoding
// finishes the image is dropped. r is always closed.
func (c *Controller) InsertImage(r io.ReadCloser) {
	if r == nil {
		return
	}
	if c.scene == nil {
		closeReader(r)
		return
	}
	sc := c.scene
	if c.opts.Dispatch == nil {
		img, err := decodeImage(r)
		if err != nil {
			log.Printf("[BOARD] Image insert failed: %v", err)
			return
		}
		c.insertImage(sc, img)
		return
	}
	go func() {
		img, err := decodeImage(r)
		if err != nil {
			log.Printf("[BOARD] Image insert failed: %v", err)
			return
		}
		c.opts.Dispatch(func() { c.insertImage(sc, img) })
	}()
}

// insertImage adds img unless the scene it was requested for is gone.
func (c *Controller) insertImage(sc Scene, img image.Image) {
	if c.scene != sc {
		log.Println("[BOARD] Board unmounted before image was ready, dropping it")
		return
	}
	c.insert(scene.NewImage(img, scene.Point{X: 50, Y: 50}, imageScale))
}

func closeReader(r io.Closer) {
	if err := r.Close(); err != nil {
		log.Printf("[BOARD] Error closing image reader: %v", err)
	}
}

func decodeImage(r io.ReadCloser) (image.Image, error) {
	defer closeReader(r)
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	log.Printf("[BOARD] Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
