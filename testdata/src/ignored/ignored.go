package ignored

//checkmerge:ignore
func Scratch(p *int) {
	*p = 1
}

func Kept(p *int) {
	*p = 2
}
