package main

import (
	"image"

	"github.com/ThatOtherAndrew/Infinidesk/internal/geo"
	"github.com/ThatOtherAndrew/Infinidesk/internal/render"
	"github.com/swaywm/go-wlroots/wlroots"
)

/* wlrPass implements render.Pass on a wlroots render pass. Everything the
 * composition pipeline emits funnels through these two methods. */
type wlrPass struct {
	pass wlroots.RenderPass
}

func (p *wlrPass) AddRect(box geo.Box, color render.Color) {
	if box.Empty() {
		return
	}
	p.pass.AddRect(wlroots.RenderRectOptions{
		Box:   wlroots.GeoBox{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height},
		Color: wlroots.RenderColor{R: color.R, G: color.G, B: color.B, A: color.A},
	})
}

func (p *wlrPass) AddTexture(opts render.TextureOptions) {
	texture, ok := opts.Texture.(*wlrTexture)
	if !ok || opts.DstBox.Empty() {
		return
	}

	filter := wlroots.ScaleFilterBilinear
	if opts.Filter == render.FilterNearest {
		filter = wlroots.ScaleFilterNearest
	}

	p.pass.AddTexture(wlroots.RenderTextureOptions{
		Texture: texture.texture,
		SrcBox: wlroots.GeoFBox{
			X: opts.SrcBox.X, Y: opts.SrcBox.Y,
			Width: opts.SrcBox.Width, Height: opts.SrcBox.Height,
		},
		DstBox: wlroots.GeoBox{
			X: opts.DstBox.X, Y: opts.DstBox.Y,
			Width: opts.DstBox.Width, Height: opts.DstBox.Height,
		},
		Alpha:      opts.Alpha,
		FilterMode: filter,
		BlendMode:  wlroots.RenderBlendModePremultiplied,
	})
}

/* textureUploader implements switcher.Uploader, turning the rasterised
 * overlay into a GPU texture. */
type textureUploader struct {
	server *Server
}

func (u *textureUploader) Upload(img *image.RGBA) (render.Texture, error) {
	bounds := img.Bounds()
	texture, err := u.server.renderer.TextureFromPixels(
		wlroots.DRMFormatABGR8888,
		uint32(img.Stride),
		uint32(bounds.Dx()),
		uint32(bounds.Dy()),
		img.Pix,
	)
	if err != nil {
		return nil, err
	}
	return &wlrTexture{texture: texture}, nil
}

func (u *textureUploader) Release(t render.Texture) {
	if texture, ok := t.(*wlrTexture); ok {
		texture.texture.Destroy()
	}
}
