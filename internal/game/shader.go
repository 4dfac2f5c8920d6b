package game

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/metaballs/internal/uniforms"
)

//go:embed metaballs.kage
var metaballsShader []byte

// shaderBackend draws frames with the metaball Kage program onto target.
// The game sets target before each driver draw.
type shaderBackend struct {
	shader *ebiten.Shader
	target *ebiten.Image
	opts   ebiten.DrawRectShaderOptions
}

func (b *shaderBackend) Init() error {
	shader, err := ebiten.NewShader(metaballsShader)
	if err != nil {
		return fmt.Errorf("loading metaballs shader: %w", err)
	}
	b.shader = shader
	return nil
}

func (b *shaderBackend) Draw(u *uniforms.FrameUniforms) {
	if b.shader == nil || b.target == nil {
		return
	}
	b.opts.Uniforms = u.Values(b.opts.Uniforms)
	b.target.DrawRectShader(int(u.Resolution[0]), int(u.Resolution[1]), b.shader, &b.opts)
}

func (b *shaderBackend) Release() {
	if b.shader != nil {
		b.shader.Deallocate()
		b.shader = nil
	}
}
