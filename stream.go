package rosette

// StreamArgs is passed to the Stream callback once per frame.
type StreamArgs struct {
	// Buffer is the whole generated buffer of the streamed shape.
	// It must not be modified.
	Buffer []float32

	// FrameLength is the number of values of this frame and
	// FrameBufferIndex its offset into Buffer.
	FrameLength      int
	FrameBufferIndex int

	// Shape is the leaf that produced the frame.
	Shape      *Shape
	Repetition Repetition
	Entry      *IndexEntry

	// Index is the ordinal of the frame, Total the number of frames.
	Index int
	Total int

	LineWidth   Value
	StrokeColor Value
	FillColor   Value
}

// Frame returns the coordinates of the frame.
func (a *StreamArgs) Frame() []float32 {
	return a.Buffer[a.FrameBufferIndex : a.FrameBufferIndex+a.FrameLength]
}

// Stream replays the generated buffer frame by frame, in index order,
// resolving the style of each frame.
//
// When no fill color is set the stroke defaults to the scene main color.
// The line width defaults to 1 unless the frame is filled and not stroked.
// Stream does nothing on a detached or ungenerated shape. A style property
// failure stops the replay and is returned.
func (s *Shape) Stream(fn func(*StreamArgs)) error {
	if s.scene == nil || s.buffer == nil || s.index == nil {
		return nil
	}

	total := len(s.index)
	offset := 0
	for i := range s.index {
		e := &s.index[i]
		owner := e.Shape
		args := e.PropArgs()

		fill, err := owner.GetProp(PropFillColor, args, Value{})
		if err != nil {
			return err
		}
		strokeDef := Value{}
		if !fill.IsDefined() {
			strokeDef = Text(s.scene.mainColor)
		}
		stroke, err := owner.GetProp(PropStrokeColor, args, strokeDef)
		if err != nil {
			return err
		}
		widthDef := Num(1)
		if fill.IsDefined() && !stroke.IsDefined() {
			widthDef = Value{}
		}
		width, err := owner.GetProp(PropLineWidth, args, widthDef)
		if err != nil {
			return err
		}

		fn(&StreamArgs{
			Buffer:           s.buffer,
			FrameLength:      e.FrameLength,
			FrameBufferIndex: offset,
			Shape:            owner,
			Repetition:       e.Repetition,
			Entry:            e,
			Index:            i,
			Total:            total,
			LineWidth:        width,
			StrokeColor:      stroke,
			FillColor:        fill,
		})
		offset += e.FrameLength
	}
	return nil
}
