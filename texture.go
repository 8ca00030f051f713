package pigeon

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"
	"honnef.co/go/safeish"

	"github.com/Chameko/pigeon/geom"
	"github.com/Chameko/pigeon/parrot"
)

// IDAllocator hands out unique texture IDs. The zero value is ready to use;
// IDs start at 1 so that 0 can mean "no texture".
type IDAllocator struct {
	next atomic.Uint64
}

// Next returns a fresh ID.
func (a *IDAllocator) Next() uint64 {
	return a.next.Add(1)
}

// Texture is a GPU texture plus the sampler it is drawn with and the unique
// ID the quad pipeline batches by.
type Texture struct {
	ID      uint64
	Parrot  *parrot.Texture
	Sampler *parrot.Sampler
	Name    string
}

// Size returns the texture's size in pixels.
func (t *Texture) Size() geom.Size[int] {
	return t.Parrot.Size
}

// TextureRegistry creates and caches scene textures. All textures share one
// linear-filtered sampler; the registry owns the ID allocator so IDs are
// unique within it.
type TextureRegistry struct {
	painter *parrot.Painter
	sampler *parrot.Sampler
	ids     IDAllocator
	byName  map[string]*Texture
}

// NewTextureRegistry builds a registry over a painter, creating the shared
// sampler.
func NewTextureRegistry(p *parrot.Painter) (*TextureRegistry, error) {
	sampler, err := p.NewSampler(wgpu.FilterModeLinear, wgpu.FilterModeLinear)
	if err != nil {
		return nil, err
	}
	return &TextureRegistry{
		painter: p,
		sampler: sampler,
		byName:  map[string]*Texture{},
	}, nil
}

// New creates an empty texture of the given size and caches it by name.
func (r *TextureRegistry) New(name string, size geom.Size[int]) (*Texture, error) {
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("pigeon: texture %q already exists", name)
	}
	pt, err := r.painter.NewTexture(name, size)
	if err != nil {
		return nil, err
	}
	tex := &Texture{
		ID:      r.ids.Next(),
		Parrot:  pt,
		Sampler: r.sampler,
		Name:    name,
	}
	r.byName[name] = tex
	logger().Info("texture created", "name", name, "id", tex.ID,
		"width", size.Width, "height", size.Height)
	return tex, nil
}

// FromImage creates a texture from an image and uploads its pixels. The
// image is converted to tightly packed RGBA first, so any image type works.
func (r *TextureRegistry) FromImage(name string, img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	size := geom.Sz(bounds.Dx(), bounds.Dy())
	tex, err := r.New(name, size)
	if err != nil {
		return nil, err
	}
	parrot.FillTexture(r.painter.Device, tex.Parrot, imagePixels(img))
	return tex, nil
}

// Lookup returns the cached texture with the given name.
func (r *TextureRegistry) Lookup(name string) (*Texture, bool) {
	tex, ok := r.byName[name]
	return tex, ok
}

// Release frees every cached texture and the shared sampler.
func (r *TextureRegistry) Release() {
	for _, tex := range r.byName {
		tex.Parrot.Release()
	}
	r.sampler.Release()
	r.byName = map[string]*Texture{}
}

// imagePixels converts an image to RGBA pixels in the bottom-up row order
// texture fills expect.
func imagePixels(img image.Image) []parrot.Rgba8 {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	width, height := bounds.Dx(), bounds.Dy()
	pixels := safeish.SliceCast[[]parrot.Rgba8](rgba.Pix)
	flipped := make([]parrot.Rgba8, 0, width*height)
	for y := height - 1; y >= 0; y-- {
		row := rgba.PixOffset(0, y) / 4
		flipped = append(flipped, pixels[row:row+width]...)
	}
	return flipped
}
