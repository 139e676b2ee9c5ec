//checkmerge:ignore
package ignored

func Hidden(p *int) {
	*p = 3
}
