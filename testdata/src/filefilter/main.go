package filefilter

func Real(p *int) {
	*p = 1
}
