package mandel

// EscapeRadius is the divergence threshold: once |z| reaches it the orbit
// of z² + c is known to diverge.
const EscapeRadius = 2.0

// Escape iterates z = z² + c from z = 0 and returns the number of iterations
// completed before |z| reached EscapeRadius, or maxIter if it never did.
// maxIter <= 0 returns 0.
func Escape(c Complex, maxIter int) int {
	var z Complex
	n := 0
	for n < maxIter && z.Abs() < EscapeRadius {
		z = z.Mul(z).Add(c)
		n++
	}
	return n
}
