package motionplan

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestTree(t *testing.T) {
	ed := NewEuclideanDynamics()
	_, err := NewTree(State{0, 0}, 0, ed)
	test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)
	_, err = NewTree(State{0, 0}, 3, nil)
	test.That(t, errors.Is(err, ErrInvalidConfiguration), test.ShouldBeTrue)

	root := State{0, 0}
	tree, err := NewTree(root, 4, ed)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Len(), test.ShouldEqual, 1)
	test.That(t, tree.Cap(), test.ShouldEqual, 4)
	test.That(t, tree.Parent(0), test.ShouldEqual, NoParent)

	// The root is copied.
	root[0] = 5
	test.That(t, tree.State(0), test.ShouldResemble, State{0, 0})

	a, err := tree.Insert(0, State{1, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldEqual, 1)
	b, err := tree.Insert(a, State{2, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b, test.ShouldEqual, 2)

	_, err = tree.Insert(7, State{3, 0})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = tree.Insert(-1, State{3, 0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, tree.Len(), test.ShouldEqual, 3)

	c, err := tree.Insert(0, State{0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldEqual, 3)

	_, err = tree.Insert(0, State{0, 2})
	test.That(t, errors.Is(err, ErrCapacityExceeded), test.ShouldBeTrue)
	test.That(t, tree.Len(), test.ShouldEqual, 4)

	test.That(t, tree.Parents(), test.ShouldResemble, []int{NoParent, 0, 1, 0})
	for i := 1; i < tree.Len(); i++ {
		test.That(t, tree.Parent(i), test.ShouldBeLessThan, i)
	}

	t.Run("path to root", func(t *testing.T) {
		test.That(t, tree.PathToRoot(b), test.ShouldResemble, []State{{0, 0}, {1, 0}, {2, 0}})
		test.That(t, tree.PathToRoot(c), test.ShouldResemble, []State{{0, 0}, {0, 1}})
		test.That(t, tree.PathToRoot(0), test.ShouldResemble, []State{{0, 0}})
		test.That(t, tree.PathToRoot(4), test.ShouldBeNil)
	})

	t.Run("copies are independent", func(t *testing.T) {
		states := tree.States()
		states[1][0] = 100
		parents := tree.Parents()
		parents[1] = 3
		test.That(t, tree.State(1), test.ShouldResemble, State{1, 0})
		test.That(t, tree.Parent(1), test.ShouldEqual, 0)
	})

	t.Run("nearest", func(t *testing.T) {
		nn, err := tree.Nearest(context.Background(), State{1.9, 0.2})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, nn, test.ShouldEqual, b)

		// (0.5, 0.5) is equally far from three states; the lowest index wins.
		nn, err = tree.Nearest(context.Background(), State{0.5, 0.5})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, nn, test.ShouldEqual, 0)
	})
}
