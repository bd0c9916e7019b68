/*
go-rmcv provides the perception to aim core of a camera equipped robotic
turret.  From a binary mask of bright regions in a frame it extracts candidate
light bars, pairs them into armour plate hypotheses, ranks the hypotheses by
targeting priority and converts the selected target's 3D offset into gun aim
angles and projectile flight time.

The root package holds the entity model (LightBar, Armour, Package and
ShootFactor) and the ParallelQueue used to hand frames between the
acquisition and processing goroutines.  Detection lives in the objdetect
subpackage and ballistics/pose solving in the solver subpackage.

See example code and usage in the example subdirectory.
*/
package rmcv
