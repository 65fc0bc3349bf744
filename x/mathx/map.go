package mathx

// MapU16 maps x in [inMin,inMax] to [outMin,outMax] with 32-bit intermediates.
// Input outside the range is clamped first. outMax may be below outMin.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax <= inMin {
		return outMin
	}
	x = Clamp(x, inMin, inMax)
	num := uint32(x - inMin)
	den := uint32(inMax - inMin)
	if outMax >= outMin {
		return outMin + uint16(num*uint32(outMax-outMin)/den)
	}
	return outMin - uint16(num*uint32(outMin-outMax)/den)
}
